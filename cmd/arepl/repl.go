package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/alterlang/alter"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// main() starts an interactive CLI ("A.REPL"), where users may enter ALTER
// statements. A.REPL will parse the statements and print them as a tree.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to A.REPL")   // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up grammar
	level := traceLevel(*tlevel)
	tracing.Select("alterlang.lr").SetTraceLevel(tracing.LevelError)
	alter.Grammar().Grammar().Dump()
	tracing.Select("alterlang.lr").SetTraceLevel(level)
	tracer().SetTraceLevel(level) // now set the user supplied level
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	//
	// set up REPL
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "arepl> ",
		AutoComplete: completer(),
	})
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	if input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if _, err := intp.Eval(input); err != nil {
			os.Exit(2)
		}
	}
	//
	// load an init file and start receiving statements
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// completer completes the leading keywords of the statement forms.
func completer() *readline.PrefixCompleter {
	conc := func(rest ...readline.PrefixCompleterInterface) readline.PrefixCompleterInterface {
		return readline.PcItem("CLUSTER", readline.PcItem("CONCENTRATION",
			readline.PcItem("PARAMETER", rest...)))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("ENSURE"),
		readline.PcItem("SET",
			readline.PcItem("VARIABLE", conc(readline.PcItem("TO"))),
			readline.PcItem("ROW", conc(readline.PcItem("FOR", readline.PcItem("VARIABLE")))),
		),
		readline.PcItem(":keywords"),
		readline.PcItem(":grammar"),
		readline.PcItem(":last"),
		readline.PcItem(":quit"),
	)
}

// Intp is our interpreter object
type Intp struct {
	repl       *readline.Instance
	statements []alter.Statement // statements of the last successful parse
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval parses a line of ALTER statements, or executes a command.
func (intp *Intp) Eval(line string) (bool, error) {
	if strings.HasPrefix(line, ":") {
		return intp.command(line)
	}
	tracer().Infof("----------------------- Parse ------------------------------------")
	statements, err := alter.ParseString(line)
	if err != nil {
		var perr *alter.ParseError
		if errors.As(err, &perr) {
			for _, msg := range perr.Messages {
				pterm.Error.Println(msg)
			}
		} else {
			pterm.Error.Println(err.Error())
		}
		return false, err
	}
	tracer().Infof("-------------------------- Output --------------------------------")
	intp.statements = statements
	printStatements(statements)
	return false, nil
}

func (intp *Intp) command(line string) (bool, error) {
	switch cmd := strings.Fields(line)[0]; cmd {
	case ":quit", ":q":
		return true, nil
	case ":last":
		printStatements(intp.statements)
	case ":keywords":
		pterm.Info.Println(strings.ToUpper(strings.Join(alter.Keywords(), " ")))
	case ":grammar":
		g := alter.Grammar().Grammar()
		for i := 0; i < g.Size(); i++ {
			pterm.Println(fmt.Sprintf("%3d: %s", i, g.Rule(i)))
		}
	default:
		err := fmt.Errorf("unknown command %s", cmd)
		pterm.Error.Println(err.Error())
		return false, err
	}
	return false, nil
}

func printStatements(statements []alter.Statement) {
	if len(statements) == 0 {
		pterm.Info.Println("no statements")
		return
	}
	ll := pterm.LeveledList{}
	for _, st := range statements {
		ll = leveledStatement(st, ll)
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledStatement(st alter.Statement, ll pterm.LeveledList) pterm.LeveledList {
	item := func(level int, format string, args ...interface{}) {
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: fmt.Sprintf(format, args...)})
	}
	switch s := st.(type) {
	case alter.SetVarDependency:
		item(0, "SetVarDependency")
		item(1, "columns    = %s", s.Columns)
		item(1, "dependency = %s", s.Dependency)
	case alter.SetVarCluster:
		item(0, "SetVarCluster")
		item(1, "columns0 = %s", s.Columns0)
		item(1, "column1  = %s", s.Column1)
	case alter.SetVarClusterConc:
		item(0, "SetVarClusterConc")
		item(1, "concentration = %s", s.Concentration)
	case alter.SetRowCluster:
		item(0, "SetRowCluster")
		item(1, "rows0  = %s", s.Rows0)
		item(1, "row1   = %s", s.Row1)
		item(1, "column = %s", s.Column)
	case alter.SetRowClusterConc:
		item(0, "SetRowClusterConc")
		item(1, "column        = %s", s.Column)
		item(1, "concentration = %s", s.Concentration)
	}
	tracer().Debugf("%s", st)
	return ll
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
