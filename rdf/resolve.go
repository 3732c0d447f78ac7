package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// resolver turns parsed names into absolute references using the current
// base URI and the live prefix table. Resolution below "relative to base"
// is plain concatenation; dot-segment removal and percent handling are the
// business of net/url and of consumers.
type resolver struct {
	base     string
	prefixes *prefixTable
}

// resolve returns the absolute reference of a parsed name. Precedence: a
// supplied namespace URI wins (itself resolved against the base first if
// relative), then a qualified name via the prefix table, then base+local.
// An unbound prefix is a data error: the reference is not produced and the
// caller drops the statement.
func (r *resolver) resolve(uri, local, qname string) (IRI, error) {
	if uri != "" {
		return r.resolveNamespace(uri, local), nil
	}
	if qname != "" {
		return r.resolveQName(qname)
	}
	return r.resolveLocal(local), nil
}

// resolveNamespace concatenates a namespace URI and a local name.
func (r *resolver) resolveNamespace(uri, local string) IRI {
	if isRelativeIRI(uri) {
		uri = r.base + uri
	}
	return IRI{Value: uri + local}
}

// resolveQName resolves a qualified name through the prefix table. A name
// without a prefix uses the default namespace when one is bound, and falls
// back to the base URI otherwise.
func (r *resolver) resolveQName(qname string) (IRI, error) {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		prefix, local := qname[:i], qname[i+1:]
		ns, ok := r.prefixes.lookup(prefix)
		if !ok {
			return IRI{}, fmt.Errorf("%w: %q in %q", ErrUnresolvedPrefix, prefix, qname)
		}
		return IRI{Value: ns + local}, nil
	}
	if ns, ok := r.prefixes.lookup(""); ok {
		return IRI{Value: ns + qname}, nil
	}
	return r.resolveLocal(qname), nil
}

// resolveLocal resolves a bare local name against the base URI.
func (r *resolver) resolveLocal(local string) IRI {
	return IRI{Value: r.base + local}
}

// isRelativeIRI reports whether value lacks a scheme.
func isRelativeIRI(value string) bool {
	u, err := url.Parse(value)
	return err != nil || !u.IsAbs()
}
