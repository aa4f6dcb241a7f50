package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Hapidzfadli/arsip-desa/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoSuratPrefix is the fixed prefix of generated surat keluar numbers.
const NoSuratPrefix = "SKm/"

// GenerateNoSurat returns the next surat keluar number (SKm/001, SKm/002, ...).
// It must be called inside the transaction that also inserts the new record:
// on MySQL the most recent row is locked with FOR UPDATE so two concurrent
// creates cannot read the same last number.
//
// The sequence follows creation order, not the numeric maximum. Deleted
// numbers are never reused and gaps are never filled.
func GenerateNoSurat(tx *gorm.DB) (string, error) {
	q := tx.Model(&models.SuratKeluar{}).Order("id DESC")
	if tx.Dialector.Name() == "mysql" {
		// SQLite has no FOR UPDATE; its whole-database write lock already
		// serializes writers.
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var last models.SuratKeluar
	if err := q.First(&last).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NoSuratPrefix + "001", nil
		}
		return "", err
	}

	return NextNoSurat(last.NoSurat), nil
}

// NextNoSurat renders the number following last. The numeric suffix starts
// right after the fixed prefix; manually edited rows that no longer match
// the SKm/NNN shape degrade to a best-effort scan for trailing digits.
func NextNoSurat(last string) string {
	seq := 0
	if len(last) > len(NoSuratPrefix) {
		if n, err := strconv.Atoi(last[len(NoSuratPrefix):]); err == nil {
			seq = n
		} else {
			seq = trailingDigits(last)
		}
	}
	return fmt.Sprintf("%s%03d", NoSuratPrefix, seq+1)
}

func trailingDigits(s string) int {
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0
	}
	return n
}
