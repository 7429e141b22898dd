package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"offwork.app/offwork/core"
	"offwork.app/offwork/infrastructure/config"
	"offwork.app/offwork/store"
	"offwork.app/offwork/utils"
	"offwork.app/offwork/widget"
)

// The widget process: renders one snapshot from the shared store and exits,
// or with -wait sleeps until the provider's refresh instant and renders once
// more. Sub-minute ticking belongs to whatever displays the output.
func main() {
	wait := flag.Bool("wait", false, "sleep until the next refresh instant and render again")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	utils.SetReferenceZone(cfg.TimezoneOffset())

	st, err := store.Open(cfg.StorePath, store.LogLevelSilent)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	ctx := context.Background()
	clock := core.SystemClock{}
	provider := widget.NewProvider(st)

	status := provider.Status(ctx, clock.Now())
	fmt.Println(widget.Render(status, clock.Now()))

	refreshAt, ok := provider.NextRefresh(status)
	if !ok || !*wait {
		return
	}

	time.Sleep(time.Until(refreshAt))
	status = provider.Status(ctx, clock.Now())
	fmt.Println(widget.Render(status, clock.Now()))
}
