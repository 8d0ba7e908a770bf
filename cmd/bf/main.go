// bf - a simple brainfuck interpreter.
// The engine works on raw source bytes: anything that is not one of
// the eight command characters is a comment.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bfLang/bf/pkg/interpreter"
	"github.com/bfLang/bf/pkg/parser"
)

var (
	flagDebug = flag.Bool("debug", false, "Show each instruction as it executes")
	flagGas   = flag.Int("gas", 0, "Set gas limit (0 = unlimited)")
	flagLimit = flag.Int("limit", 0, "Set tape cell limit (0 = unlimited)")
	flagCheck = flag.Bool("check", false, "Validate bracket structure before running")
	flagDump  = flag.Bool("dump", false, "Print a structural listing instead of running")
	flagQuiet = flag.Bool("quiet", false, "Quiet mode (no banner)")
)

func main() {
	flag.Parse()

	args := flag.Args()

	if len(args) == 0 {
		runREPL()
		return
	}

	for _, filename := range args {
		if err := runFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", filename, err)
			os.Exit(1)
		}
	}
}

func newMachine() *interpreter.Machine {
	m := interpreter.New()
	m.Debug = *flagDebug
	if *flagGas > 0 {
		m.MaxGas = *flagGas
		m.Gas = *flagGas
	}
	m.Tape.MaxCells = *flagLimit
	return m
}

func runFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if *flagDump {
		return dumpSource(filename, string(data))
	}

	if *flagCheck {
		if _, err := parser.Parse(string(data)); err != nil {
			return fmt.Errorf("unmatched brackets: %w", err)
		}
	}

	return runCode(newMachine(), data)
}

func runCode(m *interpreter.Machine, code []byte) error {
	m.Load(code)
	if err := m.Run(); err != nil {
		return fmt.Errorf("%s: %w", interpreter.StatusMessage(m.Status), err)
	}
	return nil
}

func dumpSource(filename, source string) error {
	prog, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("unmatched brackets: %w", err)
	}

	fmt.Printf("=== %s ===\n", filename)
	fmt.Printf("ops: %d  loops: %d  depth: %d\n", prog.Count(), prog.Loops(), prog.Depth())
	fmt.Println(string(prog.Ops()))
	return nil
}

func runREPL() {
	if !*flagQuiet {
		fmt.Println("bf - brainfuck interpreter")
		fmt.Println("Type :help for commands, :quit to exit")
		fmt.Println()
	}

	m := newMachine()

	reader := bufio.NewReader(os.Stdin)
	// ',' reads whatever follows the program bytes on stdin
	m.Input = reader

	multiLineBuffer := ""
	bracketDepth := 0

	for {
		if multiLineBuffer == "" {
			fmt.Print("bf> ")
		} else {
			fmt.Print("..> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			break
		}
		line = strings.TrimRight(line, "\r\n")

		if multiLineBuffer == "" {
			if handled := handleCommand(m, line); handled {
				continue
			}
		}

		// Track bracket depth for multi-line input
		for _, ch := range line {
			if ch == '[' {
				bracketDepth++
			} else if ch == ']' {
				bracketDepth--
			}
		}

		multiLineBuffer += line

		if bracketDepth <= 0 {
			if strings.TrimSpace(multiLineBuffer) != "" {
				executeREPL(m, multiLineBuffer)
			}
			multiLineBuffer = ""
			bracketDepth = 0
		}
	}
}

func handleCommand(m *interpreter.Machine, line string) bool {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return true

	case trimmed == ":help" || trimmed == ":h" || trimmed == ":?":
		printHelp()
		return true

	case trimmed == ":quit" || trimmed == ":q" || trimmed == ":exit":
		fmt.Println("Goodbye!")
		os.Exit(0)

	case trimmed == ":tape" || trimmed == ":t":
		fmt.Println(m.Tape.Dump())
		return true

	case trimmed == ":reset" || trimmed == ":r":
		m.Reset()
		fmt.Println("Tape cleared.")
		return true

	case trimmed == ":debug" || trimmed == ":d":
		m.Debug = !m.Debug
		fmt.Printf("Debug mode: %v\n", m.Debug)
		return true

	case strings.HasPrefix(trimmed, ":load ") || strings.HasPrefix(trimmed, ":l "):
		parts := strings.Fields(trimmed)
		if len(parts) < 2 {
			fmt.Println("Usage: :load <filename>")
			return true
		}
		data, err := os.ReadFile(parts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return true
		}
		executeREPL(m, string(data))
		return true

	case strings.HasPrefix(trimmed, ":gas"):
		parts := strings.Fields(trimmed)
		if len(parts) < 2 {
			fmt.Printf("Current gas: %d / %d\n", m.Gas, m.MaxGas)
			return true
		}
		var gas int
		fmt.Sscanf(parts[1], "%d", &gas)
		m.MaxGas = gas
		m.Gas = gas
		fmt.Printf("Gas limit set to %d\n", gas)
		return true
	}

	return false
}

func executeREPL(m *interpreter.Machine, source string) {
	m.Load([]byte(source))
	m.Halted = false
	m.Status = interpreter.StatusOK
	if m.MaxGas > 0 {
		m.Gas = m.MaxGas
	}

	if err := m.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", interpreter.StatusMessage(m.Status), err)
		return
	}

	fmt.Println()
	fmt.Println("Tape:", m.Tape.Dump())
}

func printHelp() {
	fmt.Print(`bf Commands:
  :help, :h, :?    Show this help
  :quit, :q        Exit bf
  :tape, :t        Show the tape around the cursor
  :reset, :r       Clear the tape and rewind
  :debug, :d       Toggle debug mode
  :load <file>     Load and execute a file
  :gas <n>         Set gas limit (0 = unlimited)

Instructions:
  +  increment the current cell (wraps 255 -> 0)
  -  decrement the current cell (wraps 0 -> 255)
  >  move the cursor right (tape grows on demand)
  <  move the cursor left (tape grows on demand)
  .  write the current cell to stdout
  ,  read one byte from stdin into the current cell (EOF stores 0)
  [  jump past the matching ] if the current cell is 0
  ]  jump back to the matching [ if the current cell is not 0

Anything else is a comment. Loops may span lines; input is executed
once the brackets balance.

Example:
  bf> ++++++++[>++++++++<-]>+.
  A
`)
}
