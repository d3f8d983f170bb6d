package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/polychess/vace/pkg/engine"
	"github.com/polychess/vace/pkg/engine/console"
	"github.com/polychess/vace/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	variantName = flag.String("variant", "orthodox", "Registered variant to play")
	hash        = flag.Uint64("hash", 64*1024*1024, "Transposition table size in bytes (0 disables it)")
	noise       = flag.Uint("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: vace [options]

vace is a parameterized variant-chess engine core driven over UCI or a
plain-text console protocol.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := engine.Options{Variant: *variantName, HashBytes: *hash, Noise: *noise}
	e, err := engine.New(ctx, "vace", "vace", engine.WithOptions(opts))
	if err != nil {
		logw.Exitf(ctx, "Failed to initialize engine: %v", err)
	}

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
