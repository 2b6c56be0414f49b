package wallet

import (
	"context"
	"encoding/hex"
	"io"
	"sync"
	"testing"

	"github.com/ClipFinance/oft-client/chains"
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ClipFinance/oft-client/mocks"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type recordingFactory struct {
	mu       sync.Mutex
	configs  []types.ChainConfig
	contract types.TokenContract
}

func (f *recordingFactory) RegisterConstructor(types.ChainType, chains.ChainConstructor) {}

func (f *recordingFactory) CreateChain(_ context.Context, config *types.ChainConfig, _ *logrus.Logger) (types.TokenContract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configs = append(f.configs, *config)
	return f.contract, nil
}

type KeyedProviderSuite struct {
	suite.Suite
	keys      []string
	addresses []string
	factory   *recordingFactory
	provider  *KeyedProvider
}

func TestKeyedProviderSuite(t *testing.T) {
	suite.Run(t, new(KeyedProviderSuite))
}

func (s *KeyedProviderSuite) SetupTest() {
	s.keys = nil
	s.addresses = nil
	for i := 0; i < 2; i++ {
		key, err := crypto.GenerateKey()
		s.Require().NoError(err)
		s.keys = append(s.keys, "0x"+hex.EncodeToString(crypto.FromECDSA(key)))
		s.addresses = append(s.addresses, crypto.PubkeyToAddress(key.PublicKey).Hex())
	}

	s.factory = &recordingFactory{contract: mocks.NewMockTokenContractForTest(s.T())}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	provider, err := NewKeyedProvider(Config{
		Keys:    s.keys,
		ChainID: "47",
		RPC: map[string]string{
			"0x2f":     "http://xpla",
			"0xaa36a7": "http://sepolia",
		},
		TxType: 2,
	}, s.factory, logger)
	s.Require().NoError(err)
	s.provider = provider
}

func (s *KeyedProviderSuite) TestInfoDefaults() {
	info := s.provider.Info()
	s.Equal(defaultName, info.Name)
	s.Equal(defaultRDNS, info.RDNS)
	_, err := uuid.Parse(info.UUID)
	s.NoError(err)
}

func (s *KeyedProviderSuite) TestRequestAccountsAndChain() {
	accounts, err := s.provider.RequestAccounts(context.Background())
	s.Require().NoError(err)
	s.Equal(s.addresses, accounts)

	chainID, err := s.provider.ChainID(context.Background())
	s.Require().NoError(err)
	s.Equal("0x2f", chainID)
}

func (s *KeyedProviderSuite) TestSelectAccountNotifies() {
	ch := make(chan []string, 1)
	sub := s.provider.SubscribeAccountsChanged(ch)
	defer sub.Unsubscribe()

	s.Require().NoError(s.provider.SelectAccount(s.addresses[1]))
	s.Equal([]string{s.addresses[1], s.addresses[0]}, <-ch)

	s.Error(s.provider.SelectAccount("0x0000000000000000000000000000000000000001"))
}

func (s *KeyedProviderSuite) TestRemoveAllAccountsNotifiesEmptyList() {
	ch := make(chan []string, 2)
	s.provider.SubscribeAccountsChanged(ch)

	s.Require().NoError(s.provider.RemoveAccount(s.addresses[0]))
	s.Equal([]string{s.addresses[1]}, <-ch)

	s.Require().NoError(s.provider.RemoveAccount(s.addresses[1]))
	s.Empty(<-ch)

	_, err := s.provider.RequestAccounts(context.Background())
	s.ErrorIs(err, xerrors.ErrNoAccounts)
}

func (s *KeyedProviderSuite) TestUnsubscribeStopsNotifications() {
	ch := make(chan []string, 1)
	sub := s.provider.SubscribeAccountsChanged(ch)
	sub.Unsubscribe()
	sub.Unsubscribe()

	s.Require().NoError(s.provider.SelectAccount(s.addresses[1]))
	s.Len(ch, 0)
}

func (s *KeyedProviderSuite) TestSwitchChain() {
	ch := make(chan []string, 1)
	s.provider.SubscribeAccountsChanged(ch)

	s.Require().NoError(s.provider.SwitchChain("0xAA36A7"))
	s.Equal(s.addresses, <-ch)

	chainID, err := s.provider.ChainID(context.Background())
	s.Require().NoError(err)
	s.Equal("0xaa36a7", chainID)

	s.Error(s.provider.SwitchChain("0x61"))
}

func (s *KeyedProviderSuite) TestTokenContractUsesActiveKeyAndCaches() {
	chain := types.ChainDescriptor{
		Name:            "XPLA",
		EndpointID:      40216,
		ChainID:         "0x2f",
		ContractAddress: "0x2Bb21C18788587cbc3b8B903F5C8eAB9c7D26988",
		NativeAdapter:   true,
	}

	first, err := s.provider.TokenContract(context.Background(), chain)
	s.Require().NoError(err)
	second, err := s.provider.TokenContract(context.Background(), chain)
	s.Require().NoError(err)
	s.Same(first, second)

	s.Require().Len(s.factory.configs, 1)
	config := s.factory.configs[0]
	s.Equal("http://xpla", config.RpcUrl)
	s.Equal(uint64(2), config.TxType)
	s.Equal(types.EVM, config.ChainType)

	key, err := crypto.HexToECDSA(config.PrivateKey)
	s.Require().NoError(err)
	s.Equal(s.addresses[0], crypto.PubkeyToAddress(key.PublicKey).Hex())

	s.Require().NoError(s.provider.SelectAccount(s.addresses[1]))
	_, err = s.provider.TokenContract(context.Background(), chain)
	s.Require().NoError(err)
	s.Len(s.factory.configs, 2)
}

func (s *KeyedProviderSuite) TestTokenContractWithoutRPC() {
	_, err := s.provider.TokenContract(context.Background(), types.ChainDescriptor{
		Name:            "BNB",
		ChainID:         "0x61",
		ContractAddress: "0x2Bb21C18788587cbc3b8B903F5C8eAB9c7D26988",
	})
	s.Error(err)
}

func TestNewKeyedProviderValidation(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := NewKeyedProvider(Config{}, nil, logger)
	require.ErrorIs(t, err, xerrors.ErrFactoryNotProvided)

	_, err = NewKeyedProvider(Config{Keys: []string{"not-a-key"}}, &recordingFactory{}, logger)
	require.ErrorIs(t, err, xerrors.ErrInvalidConfig)

	_, err = NewKeyedProvider(Config{Info: types.ProviderInfo{UUID: "bad"}}, &recordingFactory{}, logger)
	require.ErrorIs(t, err, xerrors.ErrInvalidConfig)

	p, err := NewKeyedProvider(Config{}, &recordingFactory{}, logger)
	require.NoError(t, err)
	_, err = p.ChainID(context.Background())
	require.Error(t, err)
}
