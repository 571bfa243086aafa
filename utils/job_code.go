package utils

import (
	"fmt"
	"time"
)

func GenJobCode(seq uint, t time.Time) string {
	return fmt.Sprintf("JB-%d-%06d", t.Year(), seq)
}

func GenSaleCode(seq uint, t time.Time) string {
	return fmt.Sprintf("SL-%d-%06d", t.Year(), seq)
}
