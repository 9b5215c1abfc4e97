// Command harf trains BPE tokenizer models and runs them on text.
//
// The command is a thin shell around the tokenizer package: it loads
// corpora from disk, reports training progress and compression, and
// leaves all tokenization logic to the core.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/harflab/harf/tokenizer"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "version":
		fmt.Printf("Harf BPE Tokenizer %s\n", version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("harf %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Harf - byte-level BPE tokenizer")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  train   -in corpus.txt -out model.harf [-vocab N | -merges N] [-pattern gpt2|gpt4] [-quiet]")
	fmt.Fprintln(os.Stderr, "  encode  -model model.harf [-text ... | -in file.txt]")
	fmt.Fprintln(os.Stderr, "  encode  -encoding cl100k_base -text ...")
	fmt.Fprintln(os.Stderr, "  decode  -model model.harf -ids 256,104,105")
	fmt.Fprintln(os.Stderr, "  info    -model model.harf")
	fmt.Fprintln(os.Stderr, "  version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	in := fs.String("in", "", "training corpus (UTF-8 text file)")
	out := fs.String("out", "", "output model file")
	vocab := fs.Int("vocab", 0, "target vocabulary size (>= 256)")
	merges := fs.Int("merges", 0, "number of merges to learn (alternative to -vocab)")
	pattern := fs.String("pattern", "gpt4", "split pattern preset: gpt2 or gpt4")
	quiet := fs.Bool("quiet", false, "suppress per-merge progress output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("-in and -out are required")
	}

	patternSrc, err := resolvePattern(*pattern)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*in) //nolint:gosec // G304: Corpus path comes from the command line.
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	text := string(data)

	cfg := tokenizer.TrainConfig{
		VocabSize: *vocab,
		NumMerges: *merges,
		Pattern:   patternSrc,
	}
	if !*quiet {
		cfg.Progress = func(ev tokenizer.ProgressEvent) {
			log.Printf("merge %4d: (%d, %d) -> %d (count %d, %d symbols left)",
				ev.MergeIndex+1, ev.Pair.Left, ev.Pair.Right, ev.NewSymbol, ev.Count, ev.TotalSymbols)
		}
	}

	model, err := tokenizer.Train(text, cfg)
	if err != nil {
		return err
	}

	if err := tokenizer.SaveModel(*out, model); err != nil {
		return err
	}

	ids, err := model.Encode(text)
	if err != nil {
		return err
	}
	originalLen := len(data)
	log.Printf("trained %s", model)
	if len(ids) > 0 {
		log.Printf("corpus: %d bytes -> %d tokens, compression %.2fx",
			originalLen, len(ids), float64(originalLen)/float64(len(ids)))
	}
	log.Printf("saved to %s", *out)
	return nil
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	modelPath := fs.String("model", "", "trained model file")
	encoding := fs.String("encoding", "", "pretrained OpenAI encoding (e.g. cl100k_base)")
	text := fs.String("text", "", "text to encode")
	in := fs.String("in", "", "read text from file instead of -text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := *text
	if *in != "" {
		data, err := os.ReadFile(*in) //nolint:gosec // G304: Input path comes from the command line.
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		input = string(data)
	}

	tok, err := openTokenizer(*modelPath, *encoding)
	if err != nil {
		return err
	}

	ids, err := tok.Encode(input)
	if err != nil {
		return err
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	fmt.Println(strings.Join(parts, ","))
	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	modelPath := fs.String("model", "", "trained model file")
	encoding := fs.String("encoding", "", "pretrained OpenAI encoding (e.g. cl100k_base)")
	idList := fs.String("ids", "", "comma-separated token ids")
	replace := fs.Bool("replace", false, "substitute U+FFFD for invalid byte sequences")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts []tokenizer.ModelOption
	if *replace {
		opts = append(opts, tokenizer.ReplaceInvalidUTF8())
	}

	tok, err := openTokenizer(*modelPath, *encoding, opts...)
	if err != nil {
		return err
	}

	var ids []int32
	for _, part := range strings.Split(*idList, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return fmt.Errorf("bad token id %q: %w", part, err)
		}
		ids = append(ids, int32(id))
	}

	text, err := tok.Decode(ids)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	modelPath := fs.String("model", "", "trained model file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *modelPath == "" {
		return fmt.Errorf("-model is required")
	}

	model, err := tokenizer.LoadModel(*modelPath)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", model)
	fmt.Printf("pattern: %s\n", model.Pattern())
	return nil
}

// openTokenizer picks between a trained model file and a pretrained
// OpenAI encoding; exactly one must be given. Model options only apply
// to the model path.
func openTokenizer(modelPath, encoding string, opts ...tokenizer.ModelOption) (tokenizer.Tokenizer, error) {
	switch {
	case modelPath != "" && encoding != "":
		return nil, fmt.Errorf("-model and -encoding are mutually exclusive")
	case modelPath != "":
		return tokenizer.LoadModel(modelPath, opts...)
	case encoding != "":
		return tokenizer.NewTikToken(encoding)
	default:
		return nil, fmt.Errorf("one of -model or -encoding is required")
	}
}

func resolvePattern(name string) (string, error) {
	switch name {
	case "gpt2":
		return tokenizer.PatternGPT2, nil
	case "gpt4", "":
		return tokenizer.PatternGPT4, nil
	default:
		return "", fmt.Errorf("unknown pattern preset %q (want gpt2 or gpt4)", name)
	}
}
