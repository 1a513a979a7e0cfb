// Package metrics holds the Prometheus collectors of the miner.
package metrics

import "github.com/goodnatureofminers/rieminer7000/internal/model"

const namespace = "rieminer"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func networkLabel(network model.Network) model.Network {
	if network == "" {
		return "unknown"
	}
	return network
}
