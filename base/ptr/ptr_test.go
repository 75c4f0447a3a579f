package ptr

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(pointerSuite))
}

func (s *pointerSuite) TestValues() {
	at := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)

	s.Equal("sold", *String("sold"))
	s.Equal(7, *Int(7))
	s.Equal(int64(250), *Int64(250))
	s.True(*Bool(true))
	s.Equal(at, *Time(at))
	s.Equal(5*time.Minute, *Duration(5*time.Minute))
	s.True(decimal.NewFromInt(1000).Equal(*Decimal(decimal.NewFromInt(1000))))
}

func (s *pointerSuite) TestCopies() {
	v := int64(1)
	p := Int64(v)
	v = 2
	s.Equal(int64(1), *p)
}
