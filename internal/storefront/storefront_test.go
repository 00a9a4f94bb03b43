package storefront_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoStoreRating/GoStoreRating/internal/db/models"
	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
	"github.com/GoStoreRating/GoStoreRating/internal/upload"
)

const (
	testToken  = "s3cret"
	uploadDir  = "/uploads"
	testMapURL = "https://maps.example/corner"
)

func setupService(t *testing.T) (*storefront.Service, afero.Fs, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "storefront.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	fsys := afero.NewMemMapFs()
	saver := upload.New(fsys, uploadDir)
	require.NoError(t, saver.Init())

	return storefront.New(db, saver, testToken), fsys, db
}

func image(name, content string) *storefront.Image {
	return &storefront.Image{Filename: name, Content: strings.NewReader(content)}
}

func addStore(t *testing.T, svc *storefront.Service, name string) *models.Store {
	t.Helper()

	st, err := svc.AddStore(context.Background(), storefront.AddStoreInput{
		Name:    name,
		MapLink: testMapURL,
		Token:   testToken,
		Image:   image("shop.png", "png"),
	})
	require.NoError(t, err)

	return st
}

func uploadCount(t *testing.T, fsys afero.Fs) int {
	t.Helper()

	entries, err := afero.ReadDir(fsys, uploadDir)
	require.NoError(t, err)

	return len(entries)
}

func TestAddStore(t *testing.T) {
	svc, fsys, _ := setupService(t)
	ctx := context.Background()

	st := addStore(t, svc, "Corner Shop")
	assert.Equal(t, "corner-shop", st.Slug)
	assert.Equal(t, "Corner Shop", st.Name)
	assert.Equal(t, testMapURL, st.MapLink)
	assert.True(t, strings.HasSuffix(st.Image, "-shop.png"))

	content, err := afero.ReadFile(fsys, filepath.Join(uploadDir, st.Image))
	require.NoError(t, err)
	assert.Equal(t, "png", string(content))

	got, err := svc.GetStore(ctx, "corner-shop")
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.Store.ID)
	assert.False(t, got.AverageRating.Valid())
}

func TestAddStoreRejected(t *testing.T) {
	tests := []struct {
		name    string
		input   storefront.AddStoreInput
		wantErr error
	}{
		{
			name:    "wrong token",
			input:   storefront.AddStoreInput{Name: "A", MapLink: testMapURL, Token: "guess", Image: image("a.png", "x")},
			wantErr: storefront.ErrUnauthorized,
		},
		{
			name:    "empty token",
			input:   storefront.AddStoreInput{Name: "A", MapLink: testMapURL, Image: image("a.png", "x")},
			wantErr: storefront.ErrUnauthorized,
		},
		{
			name:    "wrong token wins over missing fields",
			input:   storefront.AddStoreInput{Token: "guess"},
			wantErr: storefront.ErrUnauthorized,
		},
		{
			name:    "missing name",
			input:   storefront.AddStoreInput{MapLink: testMapURL, Token: testToken, Image: image("a.png", "x")},
			wantErr: storefront.ErrMissingFields,
		},
		{
			name:    "missing map link",
			input:   storefront.AddStoreInput{Name: "A", Token: testToken, Image: image("a.png", "x")},
			wantErr: storefront.ErrMissingFields,
		},
		{
			name:    "missing image",
			input:   storefront.AddStoreInput{Name: "A", MapLink: testMapURL, Token: testToken},
			wantErr: storefront.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, fsys, _ := setupService(t)

			_, err := svc.AddStore(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, uploadCount(t, fsys), "no image may be written")

			stores, err := svc.ListStores(context.Background())
			require.NoError(t, err)
			assert.Empty(t, stores)
		})
	}
}

func TestAddStoreDuplicateSlug(t *testing.T) {
	svc, fsys, _ := setupService(t)

	addStore(t, svc, "Corner Shop")

	_, err := svc.AddStore(context.Background(), storefront.AddStoreInput{
		Name:    "corner shop",
		MapLink: testMapURL,
		Token:   testToken,
		Image:   image("other.png", "x"),
	})
	require.ErrorIs(t, err, storefront.ErrDuplicateStore)
	assert.Equal(t, 1, uploadCount(t, fsys))
}

type failingImages struct {
	removed []string
}

func (f *failingImages) Save(name string, _ io.Reader) (string, error) {
	return "", errors.New("disk full: " + name)
}

func (f *failingImages) Remove(name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func TestAddStoreImageFailure(t *testing.T) {
	_, _, db := setupService(t)
	svc := storefront.New(db, &failingImages{}, testToken)

	_, err := svc.AddStore(context.Background(), storefront.AddStoreInput{
		Name: "A", MapLink: testMapURL, Token: testToken, Image: image("a.png", "x"),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, storefront.ErrMissingFields)

	stores, err := svc.ListStores(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestEmptyAdminTokenRejectsEverything(t *testing.T) {
	_, _, db := setupService(t)
	svc := storefront.New(db, upload.New(afero.NewMemMapFs(), uploadDir), "")

	_, err := svc.AddStore(context.Background(), storefront.AddStoreInput{
		Name: "A", MapLink: testMapURL, Image: image("a.png", "x"),
	})
	assert.ErrorIs(t, err, storefront.ErrUnauthorized)
}

func TestGetStoreNotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.GetStore(context.Background(), "nowhere")
	require.ErrorIs(t, err, storefront.ErrNotFound)

	_, err = svc.GetStore(context.Background(), "")
	require.ErrorIs(t, err, storefront.ErrNotFound)
}

func TestSubmitRatingValidation(t *testing.T) {
	tests := []struct {
		name  string
		input storefront.SubmitRatingInput
	}{
		{name: "zero", input: storefront.SubmitRatingInput{UserName: "Ann", UserMobile: "555", Rating: 0}},
		{name: "six", input: storefront.SubmitRatingInput{UserName: "Ann", UserMobile: "555", Rating: 6}},
		{name: "negative", input: storefront.SubmitRatingInput{UserName: "Ann", UserMobile: "555", Rating: -1}},
		{name: "no name", input: storefront.SubmitRatingInput{UserMobile: "555", Rating: 3}},
		{name: "no mobile", input: storefront.SubmitRatingInput{UserName: "Ann", Rating: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setupService(t)
			ctx := context.Background()

			_, err := svc.SubmitRating(ctx, "corner-shop", tt.input)
			require.ErrorIs(t, err, storefront.ErrInvalidInput)

			ratings, err := svc.ListRatings(ctx, "corner-shop")
			require.NoError(t, err)
			assert.Empty(t, ratings)
		})
	}
}

func TestSubmitRatingBounds(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, "s", storefront.SubmitRatingInput{UserName: "A", UserMobile: "1", Rating: 1})
	require.NoError(t, err)
	_, err = svc.SubmitRating(ctx, "s", storefront.SubmitRatingInput{UserName: "B", UserMobile: "2", Rating: 5})
	require.NoError(t, err)
}

func TestSubmitRatingTwice(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	addStore(t, svc, "Corner Shop")

	first, err := svc.SubmitRating(ctx, "corner-shop", storefront.SubmitRatingInput{UserName: "Ann", UserMobile: "555", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "corner-shop", first.StoreSlug)

	_, err = svc.SubmitRating(ctx, "corner-shop", storefront.SubmitRatingInput{UserName: "Ann again", UserMobile: "555", Rating: 1})
	require.ErrorIs(t, err, storefront.ErrAlreadyRated)

	ratings, err := svc.ListRatings(ctx, "corner-shop")
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].Rating)

	// the same mobile may rate another store
	_, err = svc.SubmitRating(ctx, "other-shop", storefront.SubmitRatingInput{UserName: "Ann", UserMobile: "555", Rating: 2})
	require.NoError(t, err)
}

func TestSubmitRatingUnknownStore(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, "ghost", storefront.SubmitRatingInput{UserName: "Ann", UserMobile: "555", Rating: 3})
	require.NoError(t, err)

	avg, err := svc.AverageRating(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, "3.0", avg.String())
}

func TestAverages(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	addStore(t, svc, "Three Ratings")
	addStore(t, svc, "No Ratings")

	for i, r := range []int{3, 4, 5} {
		_, err := svc.SubmitRating(ctx, "three-ratings", storefront.SubmitRatingInput{
			UserName:   "user",
			UserMobile: string(rune('0' + i)),
			Rating:     r,
		})
		require.NoError(t, err)
	}

	avg, err := svc.AverageRating(ctx, "three-ratings")
	require.NoError(t, err)
	assert.Equal(t, "4.0", avg.String())

	avg, err = svc.AverageRating(ctx, "no-ratings")
	require.NoError(t, err)
	assert.False(t, avg.Valid())

	stores, err := svc.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)

	encoded, err := json.Marshal(stores)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, "three-ratings", decoded[0]["slug"])
	assert.InDelta(t, 4.0, decoded[0]["averageRating"], 0.0001)
	assert.Equal(t, "no-ratings", decoded[1]["slug"])
	assert.Nil(t, decoded[1]["averageRating"])
	assert.Contains(t, string(encoded), `"averageRating":4.0`)
	assert.Contains(t, string(encoded), `"averageRating":null`)
}

func TestListRatingsEmpty(t *testing.T) {
	svc, _, _ := setupService(t)

	ratings, err := svc.ListRatings(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, ratings)
	assert.Empty(t, ratings)
}
