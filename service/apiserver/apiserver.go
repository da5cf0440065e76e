package apiserver

import (
	"math/big"
	"net/http"
	"sync"

	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"go.uber.org/zap"

	"github.com/deltaswaplabs/deltaswap/contract/exchange/util"
	"github.com/deltaswaplabs/deltaswap/core/types"
)

// APIServer serves the read side of the exchange over HTTP: the pair
// registry, per-pair reserves and swap quotes. All state access goes
// through one context guarded by a mutex; pair-address lookups are cached
// since they are immutable once created.
type APIServer struct {
	sync.Mutex
	e         *echo.Echo
	ctx       *types.Context
	factory   common.Address
	router    common.Address
	pairCache gcache.Cache
	logger    *zap.Logger
}

// NewAPIServer returns an APIServer bound to the given context
func NewAPIServer(ctx *types.Context, factory, router common.Address, logger *zap.Logger) *APIServer {
	return &APIServer{
		e:         echo.New(),
		ctx:       ctx,
		factory:   factory,
		router:    router,
		pairCache: gcache.New(500).LRU().Build(),
		logger:    logger,
	}
}

type pairInfo struct {
	Address            string `json:"address"`
	Token0             string `json:"token0"`
	Token1             string `json:"token1"`
	Reserve0           string `json:"reserve0"`
	Reserve1           string `json:"reserve1"`
	BlockTimestampLast uint64 `json:"blockTimestampLast"`
}

type quoteInfo struct {
	AmountIn  string `json:"amountIn"`
	AmountOut string `json:"amountOut"`
	FeeNum    uint64 `json:"feeNum"`
}

// Run starts the web service
func (s *APIServer) Run(bindAddress string) error {
	s.e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	s.e.HideBanner = true

	s.e.GET("/api/pairs", s.handlePairs)
	s.e.GET("/api/pairs/:tokenA/:tokenB", s.handlePair)
	s.e.GET("/api/quote", s.handleQuote)

	s.logger.Info("apiserver listening", zap.String("bind", bindAddress))
	return s.e.Start(bindAddress)
}

func (s *APIServer) exec(user, cont common.Address, method string, args []interface{}) ([]interface{}, error) {
	s.Lock()
	defer s.Unlock()
	return util.Exec(s.ctx, user, cont, method, args)
}

// pairOf resolves and caches the pair address of an unordered token pair
func (s *APIServer) pairOf(tokenA, tokenB common.Address) (common.Address, error) {
	key := tokenA.Hex() + tokenB.Hex()
	if v, err := s.pairCache.Get(key); err == nil {
		return v.(common.Address), nil
	}
	is, err := s.exec(util.ZeroAddress, s.factory, "GetPair", []interface{}{tokenA, tokenB})
	if err != nil {
		return util.ZeroAddress, err
	}
	pair := is[0].(common.Address)
	if pair != util.ZeroAddress {
		s.pairCache.Set(key, pair)
	}
	return pair, nil
}

func (s *APIServer) pairInfoOf(pair common.Address) (*pairInfo, error) {
	is, err := s.exec(util.ZeroAddress, pair, "Token0", []interface{}{})
	if err != nil {
		return nil, err
	}
	token0 := is[0].(common.Address)
	is, err = s.exec(util.ZeroAddress, pair, "Token1", []interface{}{})
	if err != nil {
		return nil, err
	}
	token1 := is[0].(common.Address)
	is, err = s.exec(util.ZeroAddress, pair, "Reserves", []interface{}{})
	if err != nil {
		return nil, err
	}
	return &pairInfo{
		Address:            pair.Hex(),
		Token0:             token0.Hex(),
		Token1:             token1.Hex(),
		Reserve0:           is[0].(*big.Int).String(),
		Reserve1:           is[1].(*big.Int).String(),
		BlockTimestampLast: is[2].(uint64),
	}, nil
}

func (s *APIServer) handlePairs(c echo.Context) error {
	is, err := s.exec(util.ZeroAddress, s.factory, "AllPairs", []interface{}{})
	if err != nil {
		s.logger.Warn("pair listing failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pairs := is[0].([]common.Address)
	infos := make([]*pairInfo, 0, len(pairs))
	for _, pair := range pairs {
		info, err := s.pairInfoOf(pair)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		infos = append(infos, info)
	}
	return c.JSON(http.StatusOK, infos)
}

func (s *APIServer) handlePair(c echo.Context) error {
	tokenA := common.HexToAddress(c.Param("tokenA"))
	tokenB := common.HexToAddress(c.Param("tokenB"))
	pair, err := s.pairOf(tokenA, tokenB)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if pair == util.ZeroAddress {
		return echo.NewHTTPError(http.StatusNotFound, "pair not found")
	}
	info, err := s.pairInfoOf(pair)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, info)
}

// handleQuote prices amountIn of tokenIn in tokenOut along the direct pair
func (s *APIServer) handleQuote(c echo.Context) error {
	tokenIn := common.HexToAddress(c.QueryParam("tokenIn"))
	tokenOut := common.HexToAddress(c.QueryParam("tokenOut"))
	amountIn, ok := big.NewInt(0).SetString(c.QueryParam("amountIn"), 10)
	if !ok || !util.IsPlus(amountIn) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amountIn")
	}

	is, err := s.exec(util.ZeroAddress, s.router, "GetAmountsOut", []interface{}{
		amountIn, []common.Address{tokenIn, tokenOut},
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	amounts := is[0].([]*big.Int)

	is, err = s.exec(util.ZeroAddress, s.factory, "FeeNum", []interface{}{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, &quoteInfo{
		AmountIn:  amountIn.String(),
		AmountOut: amounts[len(amounts)-1].String(),
		FeeNum:    is[0].(uint64),
	})
}
