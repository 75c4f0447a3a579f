package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/stores/statistic/repository"
)

func TestRecordSale(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	u := New(repository.NewMemory())
	now := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := u.Get(ctx, "0xc011", domain.EmptyAddress)
	req.ErrorIs(err, domain.ErrNotFound)

	_, err = u.RecordSale(ctx, "0xC011", domain.EmptyAddress, decimal.NewFromInt(100), now)
	req.NoError(err)
	_, err = u.RecordSale(ctx, "0xc011", domain.EmptyAddress, decimal.NewFromInt(51), now.Add(time.Minute))
	req.NoError(err)
	_, err = u.RecordSale(ctx, "0xc011", "0xweth", decimal.NewFromInt(7), now)
	req.NoError(err)

	s, err := u.Get(ctx, "0xc011", domain.EmptyAddress)
	req.NoError(err)
	req.Equal(int64(2), s.SaleCount)
	req.True(decimal.NewFromInt(151).Equal(s.Volume))
	req.True(decimal.NewFromInt(75).Equal(s.AveragePrice))
	req.True(decimal.NewFromInt(51).Equal(s.FloorPrice))
	req.True(decimal.NewFromInt(100).Equal(s.HighestSale))

	all, err := u.FindAll(ctx, "0xc011")
	req.NoError(err)
	req.Len(all, 2)
}
