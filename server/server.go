package server

import (
	"context"
	"github.com/egaotan/solana-swap-offer/metadata"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"net/http"
	"time"
)

type OfferLister interface {
	ListOpenOffers(ctx context.Context) ([]*swap.Offer, error)
	ListOffersByMaker(ctx context.Context, maker solana.PublicKey) ([]*swap.Offer, error)
}

type TokenResolver interface {
	Resolve(ctx context.Context, mint solana.PublicKey) *metadata.Token
}

// Server serves the read side over http: offer listings decorated with
// token metadata. It never signs.
type Server struct {
	ctx        context.Context
	logger     *zap.SugaredLogger
	listen     string
	offers     OfferLister
	tokens     TokenResolver
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(ctx context.Context, listen string, offers OfferLister, tokens TokenResolver, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = utils.NopLog()
	}
	server := &Server{
		ctx:    ctx,
		logger: logger,
		listen: listen,
		offers: offers,
		tokens: tokens,
	}
	router := gin.New()
	router.Use(gin.Recovery())
	g := router.Group("/api")
	g.GET("/offers", server.listOffers)
	server.router = router
	return server
}

func (server *Server) Handler() http.Handler {
	return server.router
}

func (server *Server) Service() {
	server.StartRPC()
	<-server.ctx.Done()
	server.StopRPC()
}

func (server *Server) StartRPC() {
	server.httpServer = &http.Server{
		Addr:    server.listen,
		Handler: server.router,
	}
	server.logger.Infof("start rpc server on %s......", server.listen)
	go func() {
		if err := server.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.logger.Errorf("ListenAndServe: %s", err.Error())
		}
	}()
}

func (server *Server) StopRPC() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.httpServer.Shutdown(ctx); err != nil {
		server.logger.Warnf("shutdown rpc server err: %s", err)
	}
	server.logger.Infof("rpc server has stopped......")
}
