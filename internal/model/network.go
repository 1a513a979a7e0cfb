package model

type Network string

var (
	Testnet   Network = "testnet"
	Mainnet   Network = "mainnet"
	Benchmark Network = "benchmark"
)
