package api

import (
	"context"
	"net/http"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/gin-gonic/gin"
)

type connectRequest struct {
	UUID string `json:"uuid" binding:"required"`
}

type balanceResponse struct {
	Account string                `json:"account"`
	Chain   types.ChainDescriptor `json:"chain"`
	Balance string                `json:"balance"`
}

type sendResponse struct {
	TxHash  string `json:"txHash"`
	Status  string `json:"status"`
	Balance string `json:"balance,omitempty"`
}

func (s *Server) listChains(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Chains.List())
}

func (s *Server) listWallets(c *gin.Context) {
	announcements := s.deps.Wallets.Providers()
	infos := make([]types.ProviderInfo, 0, len(announcements))
	for _, a := range announcements {
		infos = append(infos, a.Info)
	}
	c.JSON(http.StatusOK, infos)
}

func (s *Server) getSession(c *gin.Context) {
	current := s.deps.Sessions.Current()
	if current == nil {
		s.abort(c, xerrors.ErrNoSession)
		return
	}
	c.JSON(http.StatusOK, current)
}

func (s *Server) connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, xerrors.NewValidationError("uuid", "required"))
		return
	}

	announcement, err := s.deps.Wallets.Find(req.UUID)
	if err != nil {
		s.abort(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	connected, err := s.deps.Sessions.Connect(ctx, announcement.Provider)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, connected)
}

func (s *Server) disconnect(c *gin.Context) {
	s.deps.Sessions.Disconnect()
	c.Status(http.StatusNoContent)
}

func (s *Server) getBalance(c *gin.Context) {
	current := s.deps.Sessions.Current()
	if current == nil {
		s.abort(c, xerrors.ErrNoSession)
		return
	}

	chainID := c.DefaultQuery("chainId", current.ChainID)
	chain, err := s.deps.Chains.Get(chainID)
	if err != nil {
		s.abort(c, xerrors.WrapValidation("chainId", err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	c.JSON(http.StatusOK, balanceResponse{
		Account: current.Account,
		Chain:   chain,
		Balance: s.deps.Balances.Refresh(ctx, current, chain),
	})
}

func (s *Server) quote(c *gin.Context) {
	var req types.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, xerrors.NewValidationError("", "malformed request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	estimate, err := s.deps.Workflow.RequestQuote(ctx, req)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

func (s *Server) send(c *gin.Context) {
	var req types.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, xerrors.NewValidationError("", "malformed request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tx, err := s.deps.Workflow.CommitSend(ctx, req)
	if err != nil {
		s.abort(c, err)
		return
	}

	resp := sendResponse{
		TxHash: tx.Hash,
		Status: s.deps.Workflow.Snapshot().Status,
	}
	if current := s.deps.Sessions.Current(); current != nil {
		if chain, err := s.deps.Chains.Get(tx.ChainID); err == nil {
			resp.Balance = s.deps.Balances.Refresh(ctx, current, chain)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) reset(c *gin.Context) {
	s.deps.Workflow.Reset()
	c.JSON(http.StatusOK, s.deps.Workflow.Snapshot())
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Workflow.Snapshot())
}
