package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
	"github.com/ndewijer/mutualfund-tracker/internal/testutil"
)

func TestFundRepository_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewFundRepository(db)

	f := &model.Fund{
		Name:            "ICICI Prudential Bluechip",
		Type:            "equity",
		Folio:           "1234/56",
		SchemeCode:      "120586",
		MoneycontrolURL: "https://www.moneycontrol.com/mutual-funds/nav/x",
		Symbol:          "0P0000XVKP.BO",
	}
	require.NoError(t, repo.InsertFund(ctx, f))
	assert.NotEmpty(t, f.ID)

	got, err := repo.GetFund(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, *f, got)

	_, err = repo.GetFund(ctx, testutil.MakeID())
	assert.ErrorIs(t, err, apperrors.ErrFundNotFound)
}

func TestFundRepository_GetFunds(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewFundRepository(db)

	b := testutil.NewFund().WithName("B Fund").Build(t, db)
	a := testutil.NewFund().WithName("A Fund").Build(t, db)
	testutil.NewFund().WithName("C Fund").Build(t, db)

	all, err := repo.GetFunds(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A Fund", "B Fund", "C Fund"}, []string{all[0].Name, all[1].Name, all[2].Name})

	some, err := repo.GetFunds(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, a.ID, some[0].ID)
	assert.Equal(t, b.ID, some[1].ID)
}

func TestFundRepository_ResolveFundID(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewFundRepository(db)

	testutil.NewFund().WithID("aaaa1111-0000-0000-0000-000000000000").Build(t, db)
	testutil.NewFund().WithID("aaaa2222-0000-0000-0000-000000000000").Build(t, db)

	id, err := repo.ResolveFundID(ctx, "aaaa1")
	require.NoError(t, err)
	assert.Equal(t, "aaaa1111-0000-0000-0000-000000000000", id)

	id, err = repo.ResolveFundID(ctx, "AAAA2")
	require.NoError(t, err)
	assert.Equal(t, "aaaa2222-0000-0000-0000-000000000000", id)

	_, err = repo.ResolveFundID(ctx, "aaaa")
	assert.ErrorIs(t, err, apperrors.ErrAmbiguousID)

	_, err = repo.ResolveFundID(ctx, "bbbb")
	assert.ErrorIs(t, err, apperrors.ErrFundNotFound)

	_, err = repo.ResolveFundID(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrEmptyID)

	_, err = repo.ResolveFundID(ctx, "%")
	assert.ErrorIs(t, err, apperrors.ErrFundNotFound, "LIKE wildcards are matched literally")
}

func TestFundRepository_DeleteFund(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewFundRepository(db)

	t.Run("refused while purchases exist", func(t *testing.T) {
		f := testutil.NewFund().Build(t, db)
		testutil.NewPurchase(f.ID).Build(t, db)

		err := repo.DeleteFund(ctx, f.ID)
		assert.ErrorIs(t, err, apperrors.ErrFundInUse)
	})

	t.Run("removes fund and its snapshots", func(t *testing.T) {
		testutil.CleanDatabase(t, db)
		f := testutil.NewFund().Build(t, db)
		testutil.NewNavSnapshot(f.ID).Build(t, db)

		require.NoError(t, repo.DeleteFund(ctx, f.ID))
		testutil.AssertRowCount(t, db, "fund", 0)
		testutil.AssertRowCount(t, db, "nav_snapshot", 0)
	})

	t.Run("unknown fund", func(t *testing.T) {
		err := repo.DeleteFund(ctx, testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrFundNotFound)
	})
}
