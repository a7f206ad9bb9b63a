package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/symtab/internal/interner"
	"github.com/roach88/symtab/internal/symtab"
)

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

// InternOptions holds flags for the intern command.
type InternOptions struct {
	*RootOptions
	File   string // read values from file, one per line
	Domain string // domain name to intern under
	Store  string // backing store flavor
	NFC    bool   // NFC-normalize values before interning
	Dump   bool   // print store cells after interning
}

// InternedValue pairs an input value with its symbol id.
type InternedValue struct {
	Value string      `json:"value"`
	ID    interner.ID `json:"id"`
}

// InternResult is the output of the intern command.
type InternResult struct {
	Table    symtab.Identity `json:"table"`
	Domain   string          `json:"domain"`
	Symbols  []InternedValue `json:"symbols"`
	Distinct int             `json:"distinct"`
	Cells    int             `json:"cells"`
	Store    []interner.Cell `json:"store,omitempty"`
}

// NewInternCommand creates the intern command.
func NewInternCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InternOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "intern [values...]",
		Short: "Intern values and print their symbol ids",
		Long: `Intern each value into a fresh symbol table and print the id it maps to.

Values come from the arguments, or from --file, or from stdin, one per
line. Blank lines are skipped when reading lines. Repeated values map to
the same id.

Examples:
  symtab intern hello goodbye hello
  symtab intern --file words.txt --domain word --dump
  cat hosts.txt | symtab intern --domain host --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
			return formatter.Report(runIntern(opts, args, formatter, cmd))
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read values from file, one per line")
	cmd.Flags().StringVar(&opts.Domain, "domain", "default", "domain to intern values under")
	cmd.Flags().StringVar(&opts.Store, "store", symtab.FlavorArray.String(), "backing store (array)")
	cmd.Flags().BoolVar(&opts.NFC, "nfc", false, "NFC-normalize values before interning")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "print store cells after interning")

	return cmd
}

func runIntern(opts *InternOptions, args []string, formatter *OutputFormatter, cmd *cobra.Command) error {
	flavor, err := symtab.ParseFlavor(opts.Store)
	if err != nil {
		return NewCommandError(ErrCodeInvalidFlag, "invalid --store", err)
	}
	if opts.Domain == "" {
		return NewCommandError(ErrCodeInvalidFlag, "--domain must not be empty", nil)
	}
	if opts.File != "" && len(args) > 0 {
		return NewCommandError(ErrCodeInvalidFlag, "pass values as arguments or --file, not both", nil)
	}

	values, err := readValues(opts, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	tableOpts := []symtab.Option{symtab.WithLogger(slog.Default())}
	if opts.NFC {
		tableOpts = append(tableOpts, symtab.WithNormalization(norm.NFC))
	}
	tbl, err := symtab.New(flavor, tableOpts...)
	if err != nil {
		return NewCommandError(ErrCodeGeneric, "failed to create table", err)
	}

	domain := symtab.StringDomain[string](opts.Domain)
	result := InternResult{
		Table:   tbl.Identity(),
		Domain:  opts.Domain,
		Symbols: make([]InternedValue, 0, len(values)),
	}
	distinct := make(map[interner.ID]bool)
	for _, v := range values {
		sym := symtab.Intern(tbl, domain, v)
		distinct[sym.ID()] = true
		result.Symbols = append(result.Symbols, InternedValue{Value: v, ID: sym.ID()})
	}
	result.Distinct = len(distinct)
	result.Cells = tbl.Len()
	if opts.Dump {
		result.Store, _ = tbl.Cells()
	}

	slog.Debug("values interned",
		"table", result.Table,
		"values", len(values),
		"distinct", result.Distinct,
	)

	return formatter.Success(result, func(w io.Writer) { writeInternText(w, result) })
}

// readValues collects values from args, --file, or stdin, in that order.
func readValues(opts *InternOptions, args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	r := stdin
	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			return nil, NewCommandError(ErrCodeNotFound, "failed to open input file", err)
		}
		defer f.Close()
		r = f
	}

	var values []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, NewCommandError(ErrCodeReadFailed, "failed to read input", err)
	}
	return values, nil
}

func writeInternText(w io.Writer, result InternResult) {
	for _, s := range result.Symbols {
		fmt.Fprintf(w, "#%d\t%s\n", s.ID, s.Value)
	}
	fmt.Fprintf(w, "%d values, %d distinct symbols, %d cells\n",
		len(result.Symbols), result.Distinct, result.Cells)

	for i, c := range result.Store {
		markers := make([]string, len(c.Markers))
		for j, m := range c.Markers {
			markers[j] = string(m)
		}
		fmt.Fprintf(w, "cell #%d %q [%s]\n", i, c.Value, strings.Join(markers, ","))
	}
}
