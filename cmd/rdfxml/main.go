package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/geoknoesis/rdfxml-go/graphstore"
	"github.com/geoknoesis/rdfxml-go/rdf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rdfxml <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  parse [-base URI] <file>         - Parse a document and print its triples")
		fmt.Println("  load [-base URI] <file> <dbdir>  - Parse a document into a graph store")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(os.Args[2:])
	case "load":
		runLoad(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func parseFlags(name string, args []string, arity int) (base string, rest []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&base, "base", "", "base URI for resolving relative references")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != arity {
		fs.Usage()
		os.Exit(1)
	}
	return base, fs.Args()
}

func runParse(args []string) {
	base, rest := parseFlags("parse", args, 1)

	file, err := os.Open(rest[0])
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer file.Close()

	count := 0
	sink := rdf.GraphHandlerFunc(func(s rdf.Term, p rdf.IRI, o rdf.Term) error {
		count++
		_, err := fmt.Println(rdf.Triple{S: s, P: p, O: o})
		return err
	})
	err = rdf.Parse(context.Background(), file, sink,
		rdf.OptBaseURI(base),
		rdf.OptWarningHandler(func(warn error) { log.Printf("warning: %v", warn) }),
	)
	if err != nil {
		log.Fatalf("parse %s: %v", rest[0], err)
	}
	fmt.Fprintf(os.Stderr, "%d triples\n", count)
}

func runLoad(args []string) {
	base, rest := parseFlags("load", args, 2)

	file, err := os.Open(rest[0])
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer file.Close()

	store, err := graphstore.Open(rest[1])
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	err = rdf.Parse(context.Background(), file, store,
		rdf.OptBaseURI(base),
		rdf.OptWarningHandler(func(warn error) { log.Printf("warning: %v", warn) }),
	)
	if err != nil {
		log.Fatalf("load %s: %v", rest[0], err)
	}

	count, err := store.Count()
	if err != nil {
		log.Fatalf("count: %v", err)
	}
	fmt.Printf("store now holds %d triples\n", count)
}
