package xmcda

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ritzau/electre-kernel/pkg/outranking"
)

// WriteKernel writes the kernel as an alternativesSet
func WriteKernel(path string, labels []string) error {
	set := alternativesSet{MCDAConcept: "kernel", Elements: make([]element, 0, len(labels))}
	for _, l := range labels {
		set.Elements = append(set.Elements, element{AlternativeID: l})
	}
	return writeFile(path, set)
}

// WriteMessages writes a methodMessages file. Errors take precedence over
// log messages; with neither an error message is written.
func WriteMessages(path string, logs, errs []string) error {
	msgs := methodMessages{}
	switch {
	case len(errs) > 0:
		msgs.Errors = toMessages(errs)
	case len(logs) > 0:
		msgs.Logs = toMessages(logs)
	default:
		msgs.Errors = toMessages([]string{"Neither log nor error messages have been supplied."})
	}
	return writeFile(path, msgs)
}

// WriteRelations writes cut relations as labelled alternativesComparisons
func WriteRelations(path string, pairs []outranking.Pair, concept string) error {
	out := labelledComparisons{MCDAConcept: concept, Pairs: make([]labelledPair, 0, len(pairs))}
	for _, p := range pairs {
		out.Pairs = append(out.Pairs, labelledPair{
			Initial:  p.Initial,
			Terminal: p.Terminal,
			Label:    string(p.Relation),
		})
	}
	return writeFile(path, out)
}

func toMessages(texts []string) []message {
	msgs := make([]message, 0, len(texts))
	for _, t := range texts {
		msgs = append(msgs, message{Text: t})
	}
	return msgs
}

// writeFile wraps v in the XMCDA root element. The file is written to a
// temporary name first so readers never see partial output.
func writeFile(path string, v any) error {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())

	for _, chunk := range [][]byte{[]byte(header), body, []byte(footer)} {
		if _, err := tmp.Write(chunk); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
