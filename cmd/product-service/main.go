package main

import (
	"context"
	"time"

	"github.com/VatsalRaj481/Arise/config"
	"github.com/VatsalRaj481/Arise/internal/app"
	"github.com/VatsalRaj481/Arise/pkg/sigctx"
)

const closeTimeout = 10 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	productService := app.New(sigCtx, cfg)

	productService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	productService.Close(ctx)
}
