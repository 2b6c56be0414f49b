package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ClipFinance/oft-client/balance"
	"github.com/ClipFinance/oft-client/chainmanager"
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ClipFinance/oft-client/discovery"
	"github.com/ClipFinance/oft-client/mocks"
	"github.com/ClipFinance/oft-client/session"
	"github.com/ClipFinance/oft-client/transfer"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	walletID   = "6f1c8a53-4c2e-4b1f-9a55-2d2f1c3e0b7a"
	refusingID = "0b9e1f57-1d0a-4d8e-8a0c-8f9b3c2a6e11"
	account    = "0x00000000000000000000000000000000000000aA"
	recipient  = "0xABCDabcdABCDabcdABCDabcdABCDabcdABCDabcd"
	txHash     = "0x5e1f0c0d6b2b7a1bb6a2d68b7d2d6a9d5cfe9c2bca2a40a45d1e64b6b9c4f1a1"
)

type ServerSuite struct {
	suite.Suite
	contract *mocks.MockTokenContract
	server   *Server
	workflow *transfer.Workflow
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *ServerSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	registry, err := chainmanager.NewRegistryBuilder().WithChains(chainmanager.DefaultTestnetChains()...).Build()
	s.Require().NoError(err)

	s.contract = mocks.NewMockTokenContractForTest(s.T())

	provider := mocks.NewMockWalletProviderForTest(s.T())
	provider.EXPECT().Info().Return(types.ProviderInfo{UUID: walletID, Name: "Keyed"}).AnyTimes()
	provider.EXPECT().RequestAccounts(gomock.Any()).Return([]string{account}, nil).AnyTimes()
	provider.EXPECT().ChainID(gomock.Any()).Return("0x2f", nil).AnyTimes()
	provider.EXPECT().SubscribeAccountsChanged(gomock.Any()).Return(mocks.SubscriptionFunc(nil)).AnyTimes()
	provider.EXPECT().TokenContract(gomock.Any(), gomock.Any()).Return(s.contract, nil).AnyTimes()

	refusing := mocks.NewMockWalletProviderForTest(s.T())
	refusing.EXPECT().Info().Return(types.ProviderInfo{UUID: refusingID, Name: "Refusing"}).AnyTimes()
	refusing.EXPECT().RequestAccounts(gomock.Any()).Return(nil, errors.New("user rejected the request")).AnyTimes()

	bus := discovery.NewBus()
	wallets := discovery.NewDiscovery(logger)
	wallets.Start(bus)
	bus.RegisterProvider(provider)
	bus.Wait()
	bus.RegisterProvider(refusing)
	bus.Wait()

	sessions := session.NewManager(logger)
	s.workflow = transfer.NewWorkflow(registry, sessions, logger)
	s.server = NewServer(":0", Deps{
		Chains:   registry,
		Wallets:  wallets,
		Sessions: sessions,
		Balances: balance.NewReader(logger),
		Workflow: s.workflow,
	}, logger)
}

func (s *ServerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *ServerSuite) connect() {
	rec := s.do(http.MethodPost, "/api/v1/session", gin.H{"uuid": walletID})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *ServerSuite) transfer(amount string) types.TransferRequest {
	return types.TransferRequest{
		DestinationChainID: "0x61",
		Recipient:          recipient,
		Amount:             amount,
	}
}

func (s *ServerSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerSuite) TestListChains() {
	rec := s.do(http.MethodGet, "/api/v1/chains", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var chains []types.ChainDescriptor
	s.decode(rec, &chains)
	s.Require().Len(chains, 3)
	s.Equal("0x2f", chains[0].ChainID)
	s.True(chains[0].NativeAdapter)
}

func (s *ServerSuite) TestListWallets() {
	rec := s.do(http.MethodGet, "/api/v1/wallets", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var infos []types.ProviderInfo
	s.decode(rec, &infos)
	s.Require().Len(infos, 2)
	s.Equal(walletID, infos[0].UUID)
	s.Equal("Refusing", infos[1].Name)
}

func (s *ServerSuite) TestSessionLifecycle() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/session", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/session", gin.H{}).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/api/v1/session", gin.H{"uuid": "6f1c8a53-0000-4b1f-9a55-2d2f1c3e0b7a"}).Code)

	s.connect()

	rec := s.do(http.MethodGet, "/api/v1/session", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var current types.Session
	s.decode(rec, &current)
	s.Equal(account, current.Account)
	s.Equal("0x2f", current.ChainID)
	s.Equal("Keyed", current.Info.Name)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/session", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/session", nil).Code)
}

func (s *ServerSuite) TestConnectionRefused() {
	rec := s.do(http.MethodPost, "/api/v1/session", gin.H{"uuid": refusingID})
	s.Require().Equal(http.StatusBadGateway, rec.Code)

	var resp errorResponse
	s.decode(rec, &resp)
	s.Contains(resp.Error, "user rejected the request")
}

func (s *ServerSuite) TestBalance() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/balance", nil).Code)

	s.connect()

	s.contract.EXPECT().NativeBalance(gomock.Any(), account).Return(big.NewInt(1_500_000_000_000_000_000), nil)
	rec := s.do(http.MethodGet, "/api/v1/balance", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp balanceResponse
	s.decode(rec, &resp)
	s.Equal("1.5", resp.Balance)
	s.Equal("XPLA", resp.Chain.Name)

	s.contract.EXPECT().Decimals(gomock.Any()).Return(uint8(6), nil)
	s.contract.EXPECT().BalanceOf(gomock.Any(), account).Return(big.NewInt(2_500_000), nil)
	rec = s.do(http.MethodGet, "/api/v1/balance?chainId=0x61", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &resp)
	s.Equal("2.5", resp.Balance)

	rec = s.do(http.MethodGet, "/api/v1/balance?chainId=0x999", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestQuoteAndSend() {
	s.connect()

	s.contract.EXPECT().QuoteSend(gomock.Any(), gomock.Any(), false).
		Return(&types.MessagingFee{NativeFee: big.NewInt(500), LzTokenFee: big.NewInt(0)}, nil)

	rec := s.do(http.MethodPost, "/api/v1/quote", s.transfer("1"))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var estimate struct {
		NativeFee *big.Int `json:"nativeFee"`
		MsgValue  *big.Int `json:"msgValue"`
	}
	s.decode(rec, &estimate)
	s.Equal(int64(500), estimate.NativeFee.Int64())
	s.Equal(int64(1_000_000_000_000_000_500), estimate.MsgValue.Int64())
	s.Equal(types.StateQuoted, s.workflow.State())

	s.contract.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&types.Transaction{Hash: txHash, ChainID: "0x2f"}, nil)
	s.contract.EXPECT().WaitTransactionConfirmation(gomock.Any(), gomock.Any()).Return(types.TxDone, nil)
	s.contract.EXPECT().NativeBalance(gomock.Any(), account).Return(big.NewInt(0), nil)

	rec = s.do(http.MethodPost, "/api/v1/send", s.transfer("1"))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var sent sendResponse
	s.decode(rec, &sent)
	s.Equal(txHash, sent.TxHash)
	s.Equal("Transaction successful! Tx Hash: "+txHash, sent.Status)
	s.Equal("0", sent.Balance)
	s.Equal(types.StateSettled, s.workflow.State())
}

func (s *ServerSuite) TestStaleSendIsConflict() {
	s.connect()

	s.contract.EXPECT().QuoteSend(gomock.Any(), gomock.Any(), false).
		Return(&types.MessagingFee{NativeFee: big.NewInt(500), LzTokenFee: big.NewInt(0)}, nil)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/quote", s.transfer("10")).Code)

	rec := s.do(http.MethodPost, "/api/v1/send", s.transfer("11"))
	s.Require().Equal(http.StatusConflict, rec.Code)
	var resp errorResponse
	s.decode(rec, &resp)
	s.Equal("amount", resp.Field)
	s.Equal(types.StateIdle, s.workflow.State())
}

func (s *ServerSuite) TestUnconfirmedSendReportsTxHash() {
	s.connect()

	s.contract.EXPECT().QuoteSend(gomock.Any(), gomock.Any(), false).
		Return(&types.MessagingFee{NativeFee: big.NewInt(500), LzTokenFee: big.NewInt(0)}, nil)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/quote", s.transfer("1")).Code)

	s.contract.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&types.Transaction{Hash: txHash, ChainID: "0x2f"}, nil)
	s.contract.EXPECT().WaitTransactionConfirmation(gomock.Any(), gomock.Any()).Return(types.TxFailed, nil)

	rec := s.do(http.MethodPost, "/api/v1/send", s.transfer("1"))
	s.Require().Equal(http.StatusBadGateway, rec.Code)
	var resp errorResponse
	s.decode(rec, &resp)
	s.Equal(txHash, resp.TxHash)
	s.Contains(resp.Error, "reverted")
	s.Equal(types.StateIdle, s.workflow.State())
	s.Nil(s.workflow.Estimate())
}

func (s *ServerSuite) TestValidationErrors() {
	rec := s.do(http.MethodPost, "/api/v1/quote", s.transfer("1"))
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	var resp errorResponse
	s.decode(rec, &resp)
	s.Equal("session", resp.Field)

	s.connect()

	req := s.transfer("1")
	req.Recipient = ""
	rec = s.do(http.MethodPost, "/api/v1/quote", req)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.decode(rec, &resp)
	s.Equal("recipient", resp.Field)

	malformed := httptest.NewRequest(http.MethodPost, "/api/v1/quote", strings.NewReader("{"))
	recorder := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(recorder, malformed)
	s.Equal(http.StatusBadRequest, recorder.Code)

	rec = s.do(http.MethodPost, "/api/v1/send", s.transfer("1"))
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.decode(rec, &resp)
	s.Equal("estimate", resp.Field)
}

func (s *ServerSuite) TestQuoteFailureIsBadGateway() {
	s.connect()

	s.contract.EXPECT().QuoteSend(gomock.Any(), gomock.Any(), false).Return(nil, errors.New("execution reverted"))

	rec := s.do(http.MethodPost, "/api/v1/quote", s.transfer("1"))
	s.Require().Equal(http.StatusBadGateway, rec.Code)
	var resp errorResponse
	s.decode(rec, &resp)
	s.Equal("execution reverted", resp.Error)
	s.Equal(types.StateIdle, s.workflow.State())
}

func (s *ServerSuite) TestStateAndReset() {
	s.connect()

	s.contract.EXPECT().QuoteSend(gomock.Any(), gomock.Any(), false).
		Return(&types.MessagingFee{NativeFee: big.NewInt(500), LzTokenFee: big.NewInt(0)}, nil)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/quote", s.transfer("1")).Code)

	var event struct {
		State  types.TransferState `json:"state"`
		Status string              `json:"status"`
	}
	rec := s.do(http.MethodGet, "/api/v1/state", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &event)
	s.Equal(types.StateQuoted, event.State)
	s.Contains(event.Status, "Estimated native fee:")

	rec = s.do(http.MethodPost, "/api/v1/reset", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &event)
	s.Equal(types.StateIdle, event.State)
	s.Nil(s.workflow.Estimate())
}

func (s *ServerSuite) TestFeed() {
	ts := httptest.NewServer(s.server.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))

	var msg feedMessage
	s.Require().NoError(conn.ReadJSON(&msg))
	s.Equal("state", msg.Type)
	s.Equal(types.StateIdle, msg.Data.State)

	resp, err := http.Post(ts.URL+"/api/v1/reset", "application/json", nil)
	s.Require().NoError(err)
	resp.Body.Close()

	s.Require().NoError(conn.ReadJSON(&msg))
	s.Equal(types.StateIdle, msg.Data.State)
	s.NotZero(msg.Timestamp)
}

func (s *ServerSuite) TestShutdownBeforeStart() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.NoError(s.server.Shutdown(ctx))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", xerrors.NewValidationError("amount", "required"), http.StatusBadRequest},
		{"no estimate", xerrors.WrapValidation("estimate", xerrors.ErrNoEstimate), http.StatusBadRequest},
		{"send in progress", xerrors.WrapValidation("state", xerrors.ErrSendInProgress), http.StatusConflict},
		{"stale", &xerrors.StaleEstimateError{Field: "amount"}, http.StatusConflict},
		{"no session", xerrors.ErrNoSession, http.StatusBadRequest},
		{"provider not found", errors.Wrap(xerrors.ErrProviderNotFound, "uuid"), http.StatusNotFound},
		{"connection", &xerrors.ConnectionError{Err: errors.New("refused")}, http.StatusBadGateway},
		{"execution", &xerrors.TransferExecutionError{Op: "send", Err: errors.New("reverted")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
