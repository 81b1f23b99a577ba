package wallet_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/mocks"
	"github.com/nitk/memory-vault/internal/wallet"
)

const (
	testRPCURL          = "https://rpc.sepolia.example"
	testContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testPrivateKey      = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testKeystorePath    = "/keys/vault.json"
	testPassphrase      = "correct horse"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testWalletMocks struct {
	ctrl    *gomock.Controller
	dialer  *mocks.MockEthClientDialer
	backend *mocks.MockEthBackend
	fs      *mocks.MockFileSystem
	clock   *mocks.MockClock
}

func setupTestWallet(t *testing.T) *testWalletMocks {
	ctrl := gomock.NewController(t)
	return &testWalletMocks{
		ctrl:    ctrl,
		dialer:  mocks.NewMockEthClientDialer(ctrl),
		backend: mocks.NewMockEthBackend(ctrl),
		fs:      mocks.NewMockFileSystem(ctrl),
		clock:   mocks.NewMockClock(ctrl),
	}
}

func (tm *testWalletMocks) connector(cfg wallet.Config) wallet.Connector {
	return wallet.NewConnector(cfg, tm.dialer, tm.fs, tm.clock)
}

func baseConfig() wallet.Config {
	return wallet.Config{
		RPCURL:          testRPCURL,
		Chain:           domain.ChainEthereumSepolia,
		ContractAddress: testContractAddress,
		PrivateKey:      testPrivateKey,
	}
}

func expectedAccount(t *testing.T) common.Address {
	key, err := crypto.HexToECDSA(testPrivateKey)
	require.NoError(t, err)
	return crypto.PubkeyToAddress(key.PublicKey)
}

func TestConnector_Connect_PrivateKey(t *testing.T) {
	tm := setupTestWallet(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	tm.dialer.EXPECT().DialBackend(ctx, testRPCURL).Return(tm.backend, nil)
	tm.backend.EXPECT().ChainID(ctx).Return(big.NewInt(11155111), nil)

	cfg := baseConfig()
	cfg.PrivateKey = "0x" + testPrivateKey

	conn, err := tm.connector(cfg).Connect(ctx)
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, expectedAccount(t), conn.Account)
	require.NotNil(t, conn.Vault)
	assert.Equal(t, common.HexToAddress(testContractAddress), conn.Vault.Address())
}

func TestConnector_Connect_Keystore(t *testing.T) {
	tm := setupTestWallet(t)
	defer tm.ctrl.Finish()

	privateKey, err := crypto.HexToECDSA(testPrivateKey)
	require.NoError(t, err)
	keyJSON, err := keystore.EncryptKey(&keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}, testPassphrase, keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	ctx := context.Background()
	tm.fs.EXPECT().ReadFile(testKeystorePath).Return(keyJSON, nil)
	tm.dialer.EXPECT().DialBackend(ctx, testRPCURL).Return(tm.backend, nil)
	tm.backend.EXPECT().ChainID(ctx).Return(big.NewInt(11155111), nil)

	cfg := baseConfig()
	cfg.PrivateKey = ""
	cfg.KeystorePath = testKeystorePath
	cfg.Passphrase = testPassphrase

	conn, err := tm.connector(cfg).Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, expectedAccount(t), conn.Account)
}

func TestConnector_Connect_Errors(t *testing.T) {
	tests := []struct {
		name      string
		config    func() wallet.Config
		setup     func(tm *testWalletMocks)
		targetErr error
	}{
		{
			name: "invalid contract address",
			config: func() wallet.Config {
				cfg := baseConfig()
				cfg.ContractAddress = "not-an-address"
				return cfg
			},
			setup: func(tm *testWalletMocks) {},
		},
		{
			name: "unsupported chain",
			config: func() wallet.Config {
				cfg := baseConfig()
				cfg.Chain = domain.Chain("tezos:mainnet")
				return cfg
			},
			setup: func(tm *testWalletMocks) {},
		},
		{
			name: "no signing key",
			config: func() wallet.Config {
				cfg := baseConfig()
				cfg.PrivateKey = ""
				return cfg
			},
			setup:     func(tm *testWalletMocks) {},
			targetErr: wallet.ErrNoSigningKey,
		},
		{
			name: "invalid private key",
			config: func() wallet.Config {
				cfg := baseConfig()
				cfg.PrivateKey = "zz"
				return cfg
			},
			setup: func(tm *testWalletMocks) {},
		},
		{
			name: "keystore unreadable",
			config: func() wallet.Config {
				cfg := baseConfig()
				cfg.PrivateKey = ""
				cfg.KeystorePath = testKeystorePath
				return cfg
			},
			setup: func(tm *testWalletMocks) {
				tm.fs.EXPECT().ReadFile(testKeystorePath).Return(nil, os.ErrNotExist)
			},
			targetErr: os.ErrNotExist,
		},
		{
			name: "keystore corrupt",
			config: func() wallet.Config {
				cfg := baseConfig()
				cfg.PrivateKey = ""
				cfg.KeystorePath = testKeystorePath
				return cfg
			},
			setup: func(tm *testWalletMocks) {
				tm.fs.EXPECT().ReadFile(testKeystorePath).Return([]byte("{}"), nil)
			},
		},
		{
			name:   "dial fails",
			config: baseConfig,
			setup: func(tm *testWalletMocks) {
				tm.dialer.EXPECT().DialBackend(gomock.Any(), testRPCURL).Return(nil, errors.New("connection refused"))
			},
		},
		{
			name:   "chain id lookup fails",
			config: baseConfig,
			setup: func(tm *testWalletMocks) {
				tm.dialer.EXPECT().DialBackend(gomock.Any(), testRPCURL).Return(tm.backend, nil)
				tm.backend.EXPECT().ChainID(gomock.Any()).Return(nil, errors.New("rpc error"))
				tm.backend.EXPECT().Close()
			},
		},
		{
			name:   "wrong chain",
			config: baseConfig,
			setup: func(tm *testWalletMocks) {
				tm.dialer.EXPECT().DialBackend(gomock.Any(), testRPCURL).Return(tm.backend, nil)
				tm.backend.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(1), nil)
				tm.backend.EXPECT().Close()
			},
			targetErr: wallet.ErrChainMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestWallet(t)
			defer tm.ctrl.Finish()
			tt.setup(tm)

			conn, err := tm.connector(tt.config()).Connect(context.Background())
			assert.Error(t, err)
			assert.Nil(t, conn)
			if tt.targetErr != nil {
				assert.ErrorIs(t, err, tt.targetErr)
			}
		})
	}
}

func TestConnector_Disconnect(t *testing.T) {
	tm := setupTestWallet(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	connector := tm.connector(baseConfig())

	assert.ErrorIs(t, connector.Disconnect(ctx), wallet.ErrNotConnected)

	tm.dialer.EXPECT().DialBackend(ctx, testRPCURL).Return(tm.backend, nil)
	tm.backend.EXPECT().ChainID(ctx).Return(big.NewInt(11155111), nil)
	_, err := connector.Connect(ctx)
	require.NoError(t, err)

	tm.backend.EXPECT().Close().Times(1)
	require.NoError(t, connector.Disconnect(ctx))

	assert.ErrorIs(t, connector.Disconnect(ctx), wallet.ErrNotConnected)
}

func TestConnector_Connect_ReplacesPreviousConnection(t *testing.T) {
	tm := setupTestWallet(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	second := mocks.NewMockEthBackend(tm.ctrl)
	connector := tm.connector(baseConfig())

	gomock.InOrder(
		tm.dialer.EXPECT().DialBackend(ctx, testRPCURL).Return(tm.backend, nil),
		tm.dialer.EXPECT().DialBackend(ctx, testRPCURL).Return(second, nil),
	)
	tm.backend.EXPECT().ChainID(ctx).Return(big.NewInt(11155111), nil)
	second.EXPECT().ChainID(ctx).Return(big.NewInt(11155111), nil)

	_, err := connector.Connect(ctx)
	require.NoError(t, err)

	tm.backend.EXPECT().Close().Times(1)
	_, err = connector.Connect(ctx)
	require.NoError(t, err)

	second.EXPECT().Close().Times(1)
	require.NoError(t, connector.Disconnect(ctx))
}
