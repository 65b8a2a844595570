package mail

import "strings"

// Formatter shapes the trimmed interpreter output of one operation into the
// text returned to the caller.
type Formatter func(out string, args Args) string

func verbatim(out string, _ Args) string { return out }

// withHeader prefixes non-empty output with header and substitutes empty
// text for blank output.
func withHeader(header, empty string) Formatter {
	return func(out string, _ Args) string {
		if strings.TrimSpace(out) == "" {
			return empty
		}
		return header + "\n\n" + out
	}
}

// messageBlocks is withHeader for listings of message blocks. It keeps at
// most the requested limit of blocks, whatever the script produced.
func messageBlocks(header, empty string) Formatter {
	return func(out string, args Args) string {
		blocks := SplitBlocks(out)
		if limit := args.Int("limit", defaultLimit); len(blocks) > limit {
			blocks = blocks[:limit]
		}
		if len(blocks) == 0 {
			return empty
		}
		return header + "\n\n" + strings.Join(blocks, "\n\n")
	}
}

// SplitBlocks splits listing output into message blocks. Each block is the
// text before a separator line; the separator itself is dropped.
func SplitBlocks(out string) []string {
	var (
		blocks  []string
		current []string
	)
	flush := func() {
		if text := strings.TrimSpace(strings.Join(current, "\n")); text != "" {
			blocks = append(blocks, text)
		}
		current = current[:0]
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == blockSeparator {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}
