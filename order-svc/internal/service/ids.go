package service

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

type IDGenerator interface {
	OrderID(now time.Time) string
	InvoiceNumber(now time.Time) string
}

// RandomIDs produces ORD_<millis>_<9 chars> and INV_<millis>_<6 chars>.
// Uniqueness is probabilistic.
type RandomIDs struct{}

func (RandomIDs) OrderID(now time.Time) string {
	return "ORD_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + randomSuffix(9)
}

func (RandomIDs) InvoiceNumber(now time.Time) string {
	return "INV_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + randomSuffix(6)
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.IntN(len(base36))]
	}
	return string(b)
}
