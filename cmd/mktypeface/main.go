// Command mktypeface converts a TrueType or OpenType font into the typeface
// JSON format the asset loader reads.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"unicode"

	"earthscene/typeface"
)

const defaultChars = "ascii,latin1"

func main() {
	var (
		inPath  = flag.String("in", "", "Input .ttf/.otf file, or \"goregular\" for the bundled Go font.")
		outPath = flag.String("out", "", "Output .typeface.json file.")
		chars   = flag.String("chars", defaultChars, "Runes to export: ascii, latin1, or literal characters, comma separated.")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fatalf("usage: mktypeface -in font.ttf -out font.typeface.json [-chars ascii,latin1]")
	}

	f, err := load(*inPath)
	if err != nil {
		fatalf("load: %v", err)
	}
	runes := runeSet(*chars)
	if len(runes) == 0 {
		fatalf("no characters selected")
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fatalf("create: %v", err)
	}
	w := bufio.NewWriter(out)
	if err := f.WriteJSON(w, runes); err != nil {
		_ = out.Close()
		fatalf("write: %v", err)
	}
	if err := w.Flush(); err != nil {
		_ = out.Close()
		fatalf("write: %v", err)
	}
	if err := out.Close(); err != nil {
		fatalf("close: %v", err)
	}
}

func load(path string) (*typeface.Font, error) {
	if path == "goregular" {
		return typeface.Goregular()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return typeface.ParseSFNT(data)
}

// runeSet expands the -chars value. Named ranges are "ascii" (printable
// ASCII) and "latin1" (printable Latin-1 supplement); any other item adds
// its characters literally.
func runeSet(spec string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	addRange := func(lo, hi rune) {
		for r := lo; r <= hi; r++ {
			if unicode.IsPrint(r) {
				add(r)
			}
		}
	}

	item := ""
	flush := func() {
		switch item {
		case "":
		case "ascii":
			addRange(0x20, 0x7e)
		case "latin1":
			addRange(0xa0, 0xff)
		default:
			for _, r := range item {
				add(r)
			}
		}
		item = ""
	}
	for _, r := range spec {
		if r == ',' {
			flush()
			continue
		}
		item += string(r)
	}
	flush()
	return out
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
