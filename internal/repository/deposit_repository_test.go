package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
	"github.com/ndewijer/mutualfund-tracker/internal/testutil"
)

func TestDepositRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewDepositRepository(db)

	fd := &model.FixedDeposit{
		Name:           "SBI 1y",
		Amount:         100000,
		Rate:           7.1,
		Tenure:         365,
		DepositDate:    testutil.Date(2024, 1, 1),
		MaturityDate:   testutil.Date(2024, 12, 31),
		MaturityAmount: 107100,
	}
	require.NoError(t, repo.InsertDeposit(ctx, fd))
	testutil.CreateDeposit(t, db, "HDFC 1y", 50000, 7.25, testutil.Date(2024, 2, 1))

	deposits, err := repo.GetDeposits(ctx)
	require.NoError(t, err)
	require.Len(t, deposits, 2)
	assert.Equal(t, *fd, deposits[0])
	assert.Equal(t, "HDFC 1y", deposits[1].Name)
}
