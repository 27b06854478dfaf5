package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/InterChadz/awesomewasm-2024/api"
	"github.com/InterChadz/awesomewasm-2024/chainio"
	"github.com/InterChadz/awesomewasm-2024/core"
	"github.com/InterChadz/awesomewasm-2024/metrics"
	"github.com/InterChadz/awesomewasm-2024/svc"
	"github.com/InterChadz/awesomewasm-2024/wallet"
)

// main boots the restaker client: it opens the wallet, bootstraps the
// multi-chain session in the background and serves the HTTP API.
func main() {
	if core.C.Database.RedisHost != "" {
		core.InitStore(&core.C.Database)
	}

	w, err := wallet.NewKeyringWallet("restaker", os.Getenv("KEYRING_BACKEND"), os.Getenv("KEYRING_DIR"), os.Getenv("KEY_NAME"), chainio.NewCodec())
	if err != nil {
		core.L.Fatal("failed to open wallet", zap.Error(err))
	}
	if mnemonic := os.Getenv("MNEMONIC"); mnemonic != "" {
		if err := w.ImportMnemonic(mnemonic); err != nil {
			core.L.Fatal("failed to import mnemonic", zap.Error(err))
		}
	}

	reg := prometheus.NewRegistry()
	indicators := metrics.NewTxProcess(reg, "restaker")

	state := core.NewState()
	session := svc.NewSession(&core.C, state, w, core.L, indicators)
	service := svc.NewService(&core.C, state, session, core.L)

	ctx := context.Background()
	go func() {
		if err := session.Bootstrap(ctx); err != nil {
			core.L.Error("bootstrap failed", zap.Error(err))
			return
		}
		if err := service.FetchAppConfig(ctx); err != nil {
			core.L.Error("failed to fetch app config", zap.Error(err))
		}
		if err := service.FetchUserData(ctx); err != nil {
			core.L.Error("failed to fetch user data", zap.Error(err))
		}
		service.Run(ctx)
	}()

	router := gin.Default()
	api.SetupRoutes(router, api.NewHandler(state, service))
	core.L.Info(fmt.Sprintf("Start server at {%s}", core.C.App.Host))
	if err := router.Run(core.C.App.Host); err != nil {
		core.L.Error(fmt.Sprintf("Failed to start server due to {%s}", err))
	}
}
