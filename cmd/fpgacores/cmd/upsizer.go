package cmd

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/OpenResearchInstitute/fpga-cores/axis/upsizer"
	"github.com/OpenResearchInstitute/fpga-cores/axistest"
	"github.com/OpenResearchInstitute/fpga-cores/monitoring"
	"github.com/OpenResearchInstitute/fpga-cores/record"
	"github.com/OpenResearchInstitute/fpga-cores/sim"
	"github.com/OpenResearchInstitute/fpga-cores/sim/directconnection"
)

var (
	inputWidthBits  int
	outputWidthBits int
	numWords        int
	sourceGap       int
	sinkStall       int
	traceDB         string
	enableTrace     bool
	enableMonitor   bool
)

var upsizerCmd = &cobra.Command{
	Use:   "upsizer",
	Short: "Run a source, a width upsizer and a sink, and report the result.",
	Run:   runUpsizer,
}

func init() {
	rootCmd.AddCommand(upsizerCmd)

	upsizerCmd.Flags().IntVar(&inputWidthBits, "input-width", 32,
		"upstream word width in bits")
	upsizerCmd.Flags().IntVar(&outputWidthBits, "output-width", 128,
		"downstream word width in bits")
	upsizerCmd.Flags().IntVar(&numWords, "words", 1024,
		"number of narrow words to feed")
	upsizerCmd.Flags().IntVar(&sourceGap, "source-gap", 0,
		"idle cycles between produced words")
	upsizerCmd.Flags().IntVar(&sinkStall, "sink-stall", 0,
		"stall cycles before each consumed word")
	upsizerCmd.Flags().BoolVar(&enableTrace, "trace", false,
		"record port transfers into a SQLite database")
	upsizerCmd.Flags().StringVar(&traceDB, "trace-db", "",
		"trace database path (defaults to FPGA_CORES_TRACE_DB)")
	upsizerCmd.Flags().BoolVar(&enableMonitor, "monitor", false,
		"serve simulation state over HTTP while running")
}

func runUpsizer(_ *cobra.Command, _ []string) {
	engine := sim.NewSerialEngine()
	freq := 1 * sim.GHz

	words := generateWords(numWords, inputWidthBits/8)

	sink := axistest.MakeSinkBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithStallCycles(sinkStall).
		Build("Sink")

	converter := upsizer.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithInputWidthBits(inputWidthBits).
		WithOutputWidthBits(outputWidthBits).
		WithDestination(sink.In.AsRemote()).
		Build("Upsizer")

	source := axistest.MakeSourceBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithDestination(converter.In.AsRemote()).
		WithWords(words).
		WithGapCycles(sourceGap).
		Build("Source")

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		Build("Conn")
	conn.PlugIn(source.Out)
	conn.PlugIn(converter.In)
	conn.PlugIn(converter.Out)
	conn.PlugIn(sink.In)

	if enableTrace {
		setupTracing(engine, converter, sink)
	}

	if enableMonitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(converter)
		monitor.StartServer()
	}

	source.TickLater()

	if err := engine.Run(); err != nil {
		panic(err)
	}

	reportResult(engine, sink, words)
	atexit.Exit(0)
}

func generateWords(count, bytesPerWord int) [][]byte {
	words := make([][]byte, count)

	for i := range words {
		word := make([]byte, bytesPerWord)
		if bytesPerWord >= 4 {
			binary.LittleEndian.PutUint32(word, uint32(i))
		} else {
			word[0] = byte(i)
		}

		words[i] = word
	}

	return words
}

func setupTracing(
	engine *sim.SerialEngine,
	converter *upsizer.Comp,
	sink *axistest.Sink,
) {
	dbPath := traceDB
	if dbPath == "" {
		dbPath = os.Getenv("FPGA_CORES_TRACE_DB")
	}

	recorder := record.New(dbPath)
	logger := record.NewTransferLogger(engine, recorder, "transfers")

	converter.In.AcceptHook(logger)
	sink.In.AcceptHook(logger)
}

func reportResult(
	engine *sim.SerialEngine,
	sink *axistest.Sink,
	words [][]byte,
) {
	ratio := outputWidthBits / inputWidthBits
	wantBeats := len(words) / ratio
	gotBeats := len(sink.Received())

	fmt.Printf("Simulated time: %.9fs\n", float64(engine.CurrentTime()))
	fmt.Printf("Wide words received: %d (expected %d)\n",
		gotBeats, wantBeats)

	if gotBeats != wantBeats {
		fmt.Fprintln(os.Stderr, "simulation lost data")
		atexit.Exit(1)
	}

	cycles := (1 * sim.GHz).Cycle(engine.CurrentTime())
	if cycles > 0 {
		bytesMoved := uint64(gotBeats * outputWidthBits / 8)
		fmt.Printf("Throughput: %.3f bytes/cycle\n",
			float64(bytesMoved)/float64(cycles))
	}
}
