package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/keyring"
	"github.com/stridehq/stride/internal/server"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type ServeCmd struct {
	Port int  `help:"Port to listen on." default:"5000"`
	Env  bool `help:"Load configuration from a .env file in the working directory."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if c.Env {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	port := c.Port
	if p := os.Getenv("STRIDE_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid STRIDE_PORT %q", p)
		}
		port = parsed
	}
	if port == 0 {
		port = constants.DefaultPort
	}
	return server.Run(ctx.Tracker, port)
}

type ConfigCmd struct {
	SetDsn   ConfigSetDsnCmd   `cmd:"" name:"set-dsn" help:"Store the PostgreSQL connection string in the OS keyring."`
	ClearDsn ConfigClearDsnCmd `cmd:"" name:"clear-dsn" help:"Remove the PostgreSQL connection string from the OS keyring."`
}

type ConfigSetDsnCmd struct {
	Dsn string `arg:"" help:"PostgreSQL connection string."`
}

func (c *ConfigSetDsnCmd) Run(ctx *Context) error {
	if err := keyring.SetConnectionString(c.Dsn); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type ConfigClearDsnCmd struct{}

func (c *ConfigClearDsnCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
