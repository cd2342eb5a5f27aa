package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/sizer99/gocross/picross"
)

const fileHelp = `Puzzle files look like this:

    # comment lines start with #, ; or //
    5x10                <- [rows]x[cols]
    Rows:               <- then one hint line per row
    1, 2
    3
    0                   <- 0 (or an empty line) means an all-blank line
    2 2                 <- commas or spaces both work
    10
    Cols:               <- 'Columns:' also accepted
    ... ten hint lines ...
    Done
`

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [options] puzzlefile\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	var (
		verbosity = flag.Int("v", 0, "verbosity: 1 logs guesses and reverts, 2 logs every deduction")
		quiet     = flag.Bool("q", false, "no per-round boards, just a progress bar and the result")
		outFile   = flag.String("o", "", "duplicate the output, uncolored, to this file")
		seed      = flag.Uint64("seed", 1, "random seed for guessing; same seed, same guesses")
		force     = flag.Bool("force", false, "guess with backtracking when deduction stalls")
		stepMode  = flag.Bool("step", false, "pause between rounds; q quits")
		prof      = flag.Bool("profile", false, "write a cpu profile to the current directory")
		unknownCh = flag.String("uc", ".", "character for unknown cells")
		fillCh    = flag.String("fc", "*", "character for filled cells")
		blankCh   = flag.String("bc", "-", "character for blank cells")
	)
	var showFmt bool
	flag.BoolVar(&showFmt, "filehelp", false, "describe the puzzle file format and exit")
	flag.BoolVar(&showFmt, "H", false, "shorthand for -filehelp")
	flag.Usage = usage
	flag.Parse()

	if showFmt {
		fmt.Print(fileHelp)
		return
	}
	if flag.NArg() != 1 {
		usage()
	}
	if *prof {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	log := logrus.New()
	switch {
	case *verbosity >= 2:
		log.SetLevel(logrus.DebugLevel)
	case *verbosity == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	p, err := picross.PuzzleFromFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	chars := picross.DefaultChars()
	if len(*unknownCh) > 0 {
		chars.Unknown = (*unknownCh)[0]
	}
	if len(*fillCh) > 0 {
		chars.Filled = (*fillCh)[0]
	}
	if len(*blankCh) > 0 {
		chars.Blank = (*blankCh)[0]
	}

	s, err := picross.NewSolver(p, picross.Options{Seed: *seed, Force: *force, Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	layout := picross.NewLayout(p, chars)

	var out *os.File
	if *outFile != "" {
		out, err = os.Create(*outFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *outFile, err)
			os.Exit(1)
		}
		defer out.Close()
	}
	// every board shown on the console is duplicated, uncolored, to the outfile
	show := func() {
		for _, ln := range layout.Render(s.Board(), true) {
			fmt.Println(ln)
		}
		if out != nil {
			for _, ln := range layout.Render(s.Board(), false) {
				fmt.Fprintln(out, ln)
			}
		}
	}

	var rl *readline.Instance
	if *stepMode {
		rl, err = readline.New("round> ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "readline: %v\n", err)
			os.Exit(1)
		}
		defer rl.Close()
	}

	var wg sync.WaitGroup
	if *quiet {
		s.Progress = make(chan picross.ProgressUpdate, s.Board().Size()*2)
		wg.Add(1)
		go printUpdates(s, &wg)
	}

	startNano := time.Now().UnixNano()
	var verdict picross.Verdict
	var solveErr error
	for {
		done, v, err := s.Step()
		if !*quiet {
			show()
		}
		if done {
			verdict, solveErr = v, err
			break
		}
		if rl != nil {
			ans, rerr := rl.Readline()
			if rerr != nil || strings.TrimSpace(ans) == "q" {
				return
			}
		}
	}
	stopNano := time.Now().UnixNano()
	if s.Progress != nil {
		close(s.Progress)
		wg.Wait()
	}

	if *quiet {
		show()
	}
	w := io.Writer(os.Stdout)
	if out != nil {
		w = io.MultiWriter(os.Stdout, out)
	}
	switch verdict {
	case picross.Solved:
		fmt.Fprintln(w, "SOLVED!")
		if n := len(s.Guesses()); n > 0 {
			fmt.Fprintf(w, "Needed %d guesses.\n", n)
		}
	case picross.StalledWithoutForce:
		fmt.Fprintln(w, "Deduction alone got this far; rerun with -force to guess the rest.")
	case picross.Dead:
		fmt.Fprintf(w, "No solution: %v\n", solveErr)
	}
	fmt.Fprintf(w, "Total duration: %.4f\n", float64(stopNano-startNano)/1000000000.0)
	if *verbosity >= 1 {
		fmt.Fprint(w, s.Watch.Results())
	}
}

func printUpdates(s *picross.Solver, wg *sync.WaitGroup) {
	defer wg.Done()
	fmt.Println("Starting...")
	for {
		select {
		case update, ok := <-s.Progress:
			if !ok {
				return
			}
			bar := ""
			pct := float64(update.TotalMarked) / float64(update.GridSize)
			for i := 0.05; i <= 1.0; i += 0.05 {
				if pct >= i {
					bar += "="
				} else {
					bar += "."
				}
			}
			fmt.Print("\033[1A\033[K")
			fmt.Printf("[%s] %d/%d (%s)\n", bar, update.TotalMarked, update.GridSize, update.CurrentAction)
		default:
			time.Sleep(50 * time.Millisecond)
		}
	}
}
