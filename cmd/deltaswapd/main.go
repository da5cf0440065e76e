package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/deltaswaplabs/deltaswap/common/bin"
	"github.com/deltaswaplabs/deltaswap/contract/exchange/factory"
	"github.com/deltaswaplabs/deltaswap/contract/exchange/router"
	"github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/contract/token"
	"github.com/deltaswaplabs/deltaswap/core/types"
	"github.com/deltaswaplabs/deltaswap/internal/config"
	"github.com/deltaswaplabs/deltaswap/service/apiserver"
)

func main() {
	root := &cobra.Command{
		Use:          "deltaswapd",
		Short:        "DeltaSwap exchange daemon",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the exchange with its HTTP read API",
		RunE:  runServe,
	}
	serveCmd.Flags().String("bind", ":8541", "HTTP bind address")
	serveCmd.Flags().Int64("chain-id", 1, "chain id for permit domain separation")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, factoryAddr, routerAddr, err := genesis(big.NewInt(cfg.ChainID), logger)
	if err != nil {
		return err
	}

	server := apiserver.NewAPIServer(ctx, factoryAddr, routerAddr, logger)
	return server.Run(cfg.Bind)
}

// genesis builds a demo exchange: two tokens, the factory, the router and
// one funded pool
func genesis(chainID *big.Int, logger *zap.Logger) (*types.Context, common.Address, common.Address, error) {
	admin := common.HexToAddress("0x00000000000000000000000000000000000000ad")
	ctx := types.NewEmptyContext(chainID).NextContext(uint64(time.Now().UnixNano()))

	tokenA, err := deployToken(ctx, admin, "Wrapped MEV", "WMEV")
	if err != nil {
		return nil, common.Address{}, common.Address{}, err
	}
	tokenB, err := deployToken(ctx, admin, "DeltaSwap USD", "DUSD")
	if err != nil {
		return nil, common.Address{}, common.Address{}, err
	}

	factoryConstruction := &factory.FactoryContractConstruction{FeeToSetter: admin}
	bs, _, err := bin.WriterToBytes(factoryConstruction)
	if err != nil {
		return nil, common.Address{}, common.Address{}, err
	}
	factoryCont, err := ctx.DeployContract(admin, factory.FactoryClassID, bs)
	if err != nil {
		return nil, common.Address{}, common.Address{}, err
	}
	factoryAddr := factoryCont.Address()

	routerConstruction := &router.RouterContractConstruction{Factory: factoryAddr}
	bs, _, err = bin.WriterToBytes(routerConstruction)
	if err != nil {
		return nil, common.Address{}, common.Address{}, err
	}
	routerCont, err := ctx.DeployContract(admin, router.RouterClassID, bs)
	if err != nil {
		return nil, common.Address{}, common.Address{}, err
	}
	routerAddr := routerCont.Address()

	for _, t := range []common.Address{tokenA, tokenB} {
		if _, err := util.Exec(ctx, admin, t, "Approve", []interface{}{routerAddr, util.MaxUint256}); err != nil {
			return nil, common.Address{}, common.Address{}, err
		}
	}
	deadline := big.NewInt(0).SetUint64(ctx.LastTimestamp()/uint64(time.Second) + 3600)
	liquidity := util.Mul(big.NewInt(1000), util.Pow10(18))
	if _, err := util.Exec(ctx, admin, routerAddr, "AddLiquidity", []interface{}{
		tokenA, tokenB, liquidity, liquidity, util.Zero, util.Zero, admin, deadline,
	}); err != nil {
		return nil, common.Address{}, common.Address{}, err
	}

	logger.Info("genesis ready",
		zap.String("factory", factoryAddr.Hex()),
		zap.String("router", routerAddr.Hex()),
		zap.String("tokenA", tokenA.Hex()),
		zap.String("tokenB", tokenB.Hex()),
	)
	return ctx, factoryAddr, routerAddr, nil
}

func deployToken(ctx *types.Context, admin common.Address, name, symbol string) (common.Address, error) {
	construction := &token.TokenContractConstruction{
		Name:          name,
		Symbol:        symbol,
		InitialSupply: util.Mul(big.NewInt(1000000), util.Pow10(18)),
	}
	bs, _, err := bin.WriterToBytes(construction)
	if err != nil {
		return common.Address{}, err
	}
	cont, err := ctx.DeployContract(admin, token.TokenClassID, bs)
	if err != nil {
		return common.Address{}, err
	}
	return cont.Address(), nil
}

func buildLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
