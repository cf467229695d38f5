// Command pptxtojson resolves a .pptx file into its JSON description and
// writes it to the given output path (or stdout, given "-").
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/VitaminC1989/pptxtojson-go"
)

func main() {
	resolvePlaceholders := flag.Bool("placeholders", false, "emit layout/master prompt text for empty placeholders")
	indent := flag.Bool("pretty", false, "pretty-print the JSON output")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: pptxtojson [flags] <input.pptx> <output.json|->\n")
		os.Exit(1)
	}
	inputPath, outputPath := flag.Arg(0), flag.Arg(1)

	if err := run(inputPath, outputPath, *resolvePlaceholders, *indent); err != nil {
		fmt.Fprintf(os.Stderr, "pptxtojson: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath string, resolvePlaceholders, pretty bool) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	opts := pptxtojson.DefaultOptions()
	opts.ResolvePlaceholderText = resolvePlaceholders

	out, err := pptxtojson.Process(f, info.Size(), opts)
	if err != nil {
		return fmt.Errorf("resolve presentation: %w", err)
	}

	var data []byte
	if pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
