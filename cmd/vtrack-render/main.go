package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vtrack/vtrack"
	"github.com/vtrack/vtrack/cmd"
	"github.com/vtrack/vtrack/engine"
	"github.com/vtrack/vtrack/version"
)

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the working directory.")
	rawOut := flag.Bool("r", false, "Output the rendered pattern as .raw file (default behaviour when no other output is defined).")
	wavOut := flag.Bool("w", false, "Output the rendered pattern as .wav file. By default, saves stereo float32 buffer to disk.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	inputs := flag.String("in", "", "Comma separated list of mono raw float32 files fed to the inputs, looped. Leave an entry empty to keep that input silent.")
	patterns := flag.Int("patterns", 2, "How many times the pattern is played.")
	tempo := flag.Float64("tempo", 0, "Tempo in beats per minute. Overrides the tempo of the pattern file.")
	arm := flag.String("arm", "", "Comma separated list of input channels to arm for one-shot latches.")
	describe := flag.Bool("describe", false, "Print the trigger grid of each pattern to standard error.")
	cueOut := flag.Bool("cue", false, "Also output the cue bus, to files named like the main output with .cue before the extension.")
	params := flag.String("param", "", "Comma separated list of raw=value parameter changes applied before rendering, e.g. 0x0c0400=0.5 sets the level of track 4.")
	events := flag.Bool("events", false, "Print the MIDI events generated by the trigs to standard error.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut {
		*rawOut = true
	}
	var inputFiles []string
	if *inputs != "" {
		inputFiles = strings.Split(*inputs, ",")
	}
	inputData, err := cmd.LoadInputs(inputFiles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load inputs: %v\n", err)
		os.Exit(1)
	}
	armed, err := cmd.ParseChannels(*arm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -arm: %v\n", err)
		os.Exit(1)
	}
	paramChanges, err := cmd.ParseParams(*params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -param: %v\n", err)
		os.Exit(1)
	}
	logger := log.New(os.Stderr, "", 0)
	process := func(filename string) error {
		output := func(extension string, contents []byte) error {
			if *stdout {
				_, err := os.Stdout.Write(contents)
				return err
			}
			_, name := filepath.Split(filename)
			dir := *directory
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
				}
			}
			name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
			f := filepath.Join(dir, name)
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
			if err := os.WriteFile(f, contents, 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		pattern, matrix, bank, err := cmd.LoadPattern(filename)
		if err != nil {
			return err
		}
		if *describe {
			fmt.Fprintf(os.Stderr, "%v:\n", filename)
			if err := vtrack.Describe(os.Stderr, matrix); err != nil {
				return fmt.Errorf("could not describe pattern: %v", err)
			}
		}
		bpm := vtrack.DefaultTempo
		if pattern.Tempo != 0 {
			bpm = pattern.Tempo
		}
		if *tempo != 0 {
			bpm = *tempo
		}
		broker := engine.NewBroker()
		go engine.NewAllocator(broker).Run()
		go engine.NewMonitor(broker, logger).Run()
		defer broker.Close(time.Second)
		e := engine.New(broker)
		if err := e.SetTempo(bpm); err != nil {
			return err
		}
		if err := e.Sync(5 * time.Second); err != nil {
			return err
		}
		e.LoadMatrix(matrix)
		e.SetBank(bank)
		for _, c := range armed {
			if err := e.Arm(c, true); err != nil {
				return err
			}
		}
		for _, c := range paramChanges {
			e.SetParam(c.ID, c.Value)
		}
		frames := e.CaptureLength() * *patterns
		buffer, cue, evs := engine.Render(e, inputData, frames, 256)
		if *events {
			for _, ev := range evs {
				fmt.Fprintf(os.Stderr, "%8d %-14v ch %2d %3d vel %.2f len %d\n", ev.Frame, ev.Kind, ev.Channel, ev.Pitch, ev.Velocity, ev.Length)
			}
		}
		write := func(buffer vtrack.AudioBuffer, suffix string) error {
			if *rawOut {
				raw, err := buffer.Raw(*pcm)
				if err != nil {
					return fmt.Errorf("could not generate .raw file: %v", err)
				}
				if err := output(suffix+".raw", raw); err != nil {
					return fmt.Errorf("error outputting .raw file: %v", err)
				}
			}
			if *wavOut {
				wav, err := buffer.Wav(*pcm)
				if err != nil {
					return fmt.Errorf("could not generate .wav file: %v", err)
				}
				if err := output(suffix+".wav", wav); err != nil {
					return fmt.Errorf("error outputting .wav file: %v", err)
				}
			}
			return nil
		}
		if err := write(buffer, ""); err != nil {
			return err
		}
		if *cueOut {
			return write(cue, ".cue")
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			jsonfiles, err := filepath.Glob(filepath.Join(param, "*.json"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for json files: %v\n", param, err)
				retval = 1
				continue
			}
			ymlfiles, err := filepath.Glob(filepath.Join(param, "*.yml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for yml files: %v\n", param, err)
				retval = 1
				continue
			}
			files := append(ymlfiles, jsonfiles...)
			for _, file := range files {
				if err := process(file); err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else {
			if err := process(param); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "VTrack command line utility for rendering .yml/.json pattern files offline.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
