// Command vgaview runs text through the kernel terminal driver on the host
// and shows the resulting 80x25 text mode screen, either on the current
// terminal or as a plain text dump.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/atextor/embrace/device/tty"
	"github.com/atextor/embrace/device/video/console"
)

const banner = "Hello, ^4kernel^7 World!\n"

type options struct {
	dump     bool
	ascii    bool
	banner   bool
	bootInfo string
}

// newScreenFn is mocked by tests.
var newScreenFn = tcell.NewScreen

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "vgaview [file...]",
		Short: "Render text through the VGA text terminal driver",
		Long: "vgaview writes each input file (or stdin) to an 80x25 text mode terminal,\n" +
			"interpreting ^X color escapes, and displays the resulting screen.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.dump, "dump", false, "print the screen contents as text instead of displaying them")
	flags.BoolVar(&opts.ascii, "ascii", false, "show characters outside printable ASCII as '.'")
	flags.BoolVar(&opts.banner, "banner", false, "write the kernel greeting before any input")
	flags.StringVar(&opts.bootInfo, "boot-info", "", "write `ADDR` as a boot info pointer after the input")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	var (
		grid console.Grid
		term = tty.NewTerminal()
	)
	term.Init(&grid)

	if opts.banner {
		term.WriteString(banner)
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	for _, name := range args {
		data, err := readInput(cmd.InOrStdin(), name)
		if err != nil {
			return err
		}

		term.WriteString(string(data))
	}

	if opts.bootInfo != "" {
		ptr, err := strconv.ParseUint(opts.bootInfo, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid boot info pointer %q: %w", opts.bootInfo, err)
		}

		term.WriteString("boot info: ")
		term.WritePointer(uintptr(ptr))
		term.PutChar('\n')
	}

	if opts.dump {
		return dump(cmd.OutOrStdout(), &grid, opts.ascii)
	}

	s, err := newScreenFn()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer s.Fini()

	cursorX, cursorY := term.CursorPosition()
	show(s, &grid, cursorX, cursorY, opts.ascii)

	return nil
}

// readInput returns the contents of the named file; "-" selects stdin.
func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}
