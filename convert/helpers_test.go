package convert_test

import (
	"math/big"

	"github.com/radiativity-co/ucon/scale"
)

func bigRat(n int64) *big.Rat { return big.NewRat(n, 1) }

func unitOne() scale.Scale { return scale.One }
