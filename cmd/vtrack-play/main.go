package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/vtrack/vtrack"
	"github.com/vtrack/vtrack/cmd"
	"github.com/vtrack/vtrack/engine"
	"github.com/vtrack/vtrack/oto"
	"github.com/vtrack/vtrack/version"
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	inputs := flag.String("in", "", "Comma separated list of mono raw float32 files fed to the inputs, looped. Leave an entry empty to keep that input silent.")
	tempo := flag.Float64("tempo", 0, "Tempo in beats per minute. Overrides the tempo of the pattern file.")
	arm := flag.String("arm", "", "Comma separated list of input channels to arm for one-shot latches.")
	midiPort := flag.String("midi", "", "Send the generated notes to the first MIDI output port whose name starts with this.")
	listPorts := flag.Bool("list", false, "List the MIDI output ports and exit.")
	meter := flag.Bool("meter", false, "Print the output peak and pattern position twice a second.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	midiOut := cmd.NewMidiOutput()
	defer midiOut.Close()
	if *listPorts {
		for _, p := range midiOut.Ports() {
			fmt.Println(p)
		}
		os.Exit(0)
	}
	if flag.NArg() != 1 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if err := play(flag.Arg(0), *inputs, *arm, *tempo, *midiPort, *meter, midiOut); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func play(filename, inputs, arm string, tempo float64, midiPort string, meter bool, midiOut cmd.MidiOutput) error {
	pattern, matrix, bank, err := cmd.LoadPattern(filename)
	if err != nil {
		return err
	}
	var inputFiles []string
	if inputs != "" {
		inputFiles = strings.Split(inputs, ",")
	}
	inputData, err := cmd.LoadInputs(inputFiles)
	if err != nil {
		return fmt.Errorf("could not load inputs: %v", err)
	}
	armed, err := cmd.ParseChannels(arm)
	if err != nil {
		return fmt.Errorf("invalid -arm: %v", err)
	}
	if midiPort != "" {
		if err := midiOut.OpenBy(midiPort, false); err != nil {
			return fmt.Errorf("could not open MIDI output %q: %v", midiPort, err)
		}
	}
	logger := log.New(os.Stderr, "", log.Ltime)
	broker := engine.NewBroker()
	monitor := engine.NewMonitor(broker, logger)
	go engine.NewAllocator(broker).Run()
	go monitor.Run()
	defer broker.Close(3 * time.Second)
	e := engine.New(broker)
	bpm := vtrack.DefaultTempo
	if pattern.Tempo != 0 {
		bpm = pattern.Tempo
	}
	if tempo != 0 {
		bpm = tempo
	}
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
	events := make(chan vtrack.Event, 1024)
	go cmd.ForwardMidi(events, midiOut, func(err error) { logger.Printf("MIDI: %v", err) })
	renderer := engine.NewRenderer(e, inputData, 512)
	renderer.OnEvent = func(ev vtrack.Event) {
		if !engine.TrySend(events, ev) {
			logger.Printf("MIDI event queue full, dropped %v", ev.Kind)
		}
	}
	context, err := oto.NewContext()
	if err != nil {
		return fmt.Errorf("could not acquire oto AudioContext: %v", err)
	}
	defer context.Suspend()
	output := context.Play(renderer)
	defer output.Close()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	var tick <-chan time.Time
	if meter {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-interrupt:
			return output.Err()
		case <-tick:
			if err := output.Err(); err != nil {
				return err
			}
			pos := monitor.Position()
			fmt.Fprintf(os.Stderr, "step %2d  peak %.3f\n", vtrack.StepIndex(pos), monitor.Peak())
		}
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "VTrack command line utility for playing a .yml/.json pattern file through the sound card.\nUsage: %s [flags] path\n", os.Args[0])
	flag.PrintDefaults()
}
