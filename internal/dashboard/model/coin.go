package model

// Coin identifies the chain a dashboard is built for.
type Coin string

// Network identifies the network of a coin.
type Network string

const (
	BTC Coin = "BTC"
	LTC Coin = "LTC"
	RVN Coin = "RVN"
)

const (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)
