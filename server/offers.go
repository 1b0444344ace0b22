package server

import (
	"context"
	"github.com/egaotan/solana-swap-offer/backend"
	"github.com/egaotan/solana-swap-offer/metadata"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"net/http"
	"strconv"
)

type TokenView struct {
	Mint     string `json:"mint"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Amount   string `json:"amount"`
	AmountUi string `json:"amount_ui"`
}

type OfferView struct {
	Address string     `json:"address"`
	Id      uint64     `json:"id"`
	Maker   string     `json:"maker"`
	Offered *TokenView `json:"offered"`
	Wanted  *TokenView `json:"wanted"`
}

type ListOffersResponse struct {
	Offers []*OfferView `json:"offers"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (server *Server) tokenView(ctx context.Context, mint solana.PublicKey, amount uint64) *TokenView {
	view := &TokenView{
		Mint:   mint.String(),
		Amount: strconv.FormatUint(amount, 10),
	}
	var token *metadata.Token
	if server.tokens != nil {
		token = server.tokens.Resolve(ctx, mint)
	}
	if token == nil {
		view.AmountUi = view.Amount
		return view
	}
	view.Name = token.Name
	view.Symbol = token.Symbol
	view.Decimals = token.Decimals
	view.AmountUi = token.AmountUi(amount).String()
	return view
}

func (server *Server) listOffers(c *gin.Context) {
	ctx := c.Request.Context()
	var offers []*swap.Offer
	var err error
	if maker := c.Query("maker"); maker != "" {
		key, parseErr := solana.PublicKeyFromBase58(maker)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, &ErrorResponse{Error: "invalid maker: " + parseErr.Error()})
			return
		}
		offers, err = server.offers.ListOffersByMaker(ctx, key)
	} else {
		offers, err = server.offers.ListOpenOffers(ctx)
	}
	if err != nil {
		server.logger.Warnf("list offers err: %s", err)
		status := http.StatusInternalServerError
		if errors.Is(err, backend.ErrGatewayUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, &ErrorResponse{Error: err.Error()})
		return
	}
	response := &ListOffersResponse{Offers: make([]*OfferView, 0, len(offers))}
	for _, offer := range offers {
		response.Offers = append(response.Offers, &OfferView{
			Address: offer.Address.String(),
			Id:      offer.Id,
			Maker:   offer.Maker.String(),
			Offered: server.tokenView(ctx, offer.MintOffered, offer.AmountOffered),
			Wanted:  server.tokenView(ctx, offer.MintWanted, offer.AmountWanted),
		})
	}
	c.JSON(http.StatusOK, response)
}
