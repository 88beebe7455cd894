// Command xmltok validates XML documents against the tokenizer and
// document-tree builder in this module. Given one or more paths, it
// walks directories for ".xml" files, parses everything it finds,
// and reports every failure before exiting.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nilxml/xmltok/loader"
	"github.com/nilxml/xmltok/source"
	"github.com/nilxml/xmltok/token"
	"github.com/nilxml/xmltok/tokenizer"
)

func main() {
	dump := flag.Bool("dump", false, "print the token stream for each file instead of validating it")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-dump] path [path ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *dump {
		for _, path := range paths {
			if err := dumpTokens(path); err != nil {
				log.Fatalf("%s: %v", path, err)
			}
		}
		return
	}

	l := loader.New()
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		if info.IsDir() {
			if err := l.AddFS(os.DirFS(path)); err != nil {
				log.Fatalf("%s: %v", path, err)
			}
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		l.AddDocument(path, string(content))
	}

	result := l.Load()
	for name, err := range result.Errors {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
	}
	if !result.OK() {
		os.Exit(1)
	}
	fmt.Printf("%d document(s) OK\n", len(result.Documents))
}

func dumpTokens(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tz := tokenizer.New(source.New(f), nil)
	for {
		tok, err := tz.NextToken()
		if err != nil {
			return err
		}
		fmt.Println(tok.String())
		if tok.Kind == token.EndOfFile {
			return nil
		}
	}
}
