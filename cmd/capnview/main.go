package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/capwire/wire"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to message file")
		flat        = flag.Bool("flat", false, "Treat input as a single unframed segment")
		maxDepth    = flag.Int("max-depth", wire.DefaultDepthLimit, "Pointer recursion limit")
		maxRead     = flag.Int64("max-read", wire.DefaultReadLimit, "Cumulative traversal limit in bytes")
		verbose     = flag.Bool("v", false, "Enable decode tracing")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: capnview -in <message.bin> [-flat] [-max-depth n] [-max-read n]")
		fmt.Fprintln(os.Stderr, "       capnview -in <message.bin> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			os.Exit(1)
		}
		wire.SetLogger(logger)
	}

	buf, err := os.ReadFile(*inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}

	opts := []wire.Option{
		wire.WithDepthLimit(*maxDepth),
		wire.WithReadLimit(*maxRead),
	}
	var r *wire.Reader
	if *flat {
		r = wire.NewFlatReader(buf, opts...)
	} else {
		r, err = wire.NewReader(buf, opts...)
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("frame: "+err.Error()))
			os.Exit(1)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile, r); err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			os.Exit(1)
		}
		return
	}

	fmt.Println(renderMessage(*inFile, r))
}

// renderMessage produces the full static report: segment table plus the
// schema-less walk of the root pointer.
func renderMessage(name string, r *wire.Reader) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(name))
	b.WriteByte('\n')
	for i := 0; i < r.NumSegments(); i++ {
		seg, err := r.Segment(i)
		if err != nil {
			b.WriteString(errStyle.Render(err.Error()))
			b.WriteByte('\n')
			continue
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("segment %d: %d bytes (%d words)", i, seg.Len(), seg.Len()/wire.WordSize)))
		b.WriteByte('\n')
	}

	root, err := r.WalkRoot()
	if err != nil {
		b.WriteString(errStyle.Render("decode: " + err.Error()))
		return b.String()
	}
	renderNode(&b, root, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func renderNode(b *strings.Builder, n wire.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(kindStyle.Render(n.Kind.String()))

	switch n.Kind {
	case wire.NodeNull:
		b.WriteByte('\n')
	case wire.NodeStruct:
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d data words, %d pointers)", len(n.Data), len(n.Children))))
		b.WriteByte('\n')
		for _, w := range n.Data {
			b.WriteString(indent + "  ")
			b.WriteString(valueStyle.Render(fmt.Sprintf("%#016x", w)))
			b.WriteByte('\n')
		}
		for _, c := range n.Children {
			renderNode(b, c, depth+1)
		}
	case wire.NodeVoidList:
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d elements)", n.Count)))
		b.WriteByte('\n')
	case wire.NodeBitList:
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d bits)", len(n.Bools))))
		b.WriteString(" " + valueStyle.Render(renderBools(n.Bools)))
		b.WriteByte('\n')
	case wire.NodeScalarList:
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d x %d bytes)", len(n.Data), n.Width)))
		b.WriteByte('\n')
		b.WriteString(indent + "  ")
		b.WriteString(valueStyle.Render(renderScalars(n.Data)))
		b.WriteByte('\n')
	case wire.NodePointerList, wire.NodeStructList:
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d elements)", len(n.Children))))
		b.WriteByte('\n')
		for _, c := range n.Children {
			renderNode(b, c, depth+1)
		}
	}
}

func renderBools(bs []bool) string {
	var b strings.Builder
	for _, v := range bs {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func renderScalars(vs []uint64) string {
	const max = 16
	parts := make([]string, 0, max+1)
	for i, v := range vs {
		if i == max {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
