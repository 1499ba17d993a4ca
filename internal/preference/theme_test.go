package preference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"grammarguide/internal/guide"
	"grammarguide/internal/model"
	"grammarguide/internal/preference"
	"grammarguide/internal/repository"
	"grammarguide/internal/repository/mock"
	"grammarguide/internal/repository/testutil"
)

func TestThemeStore_DefaultsToDark(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := mock.NewMockSettingsRepository(ctrl)
	settings.EXPECT().Get(gomock.Any(), "theme").Return(nil, nil)

	theme, err := preference.NewThemeStore(settings).LoadTheme(context.Background())
	require.NoError(t, err)
	require.Equal(t, guide.ThemeDark, theme)
}

func TestThemeStore_IgnoresGarbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := mock.NewMockSettingsRepository(ctrl)
	settings.EXPECT().Get(gomock.Any(), "theme").Return(&model.Setting{Key: "theme", Value: "sepia"}, nil)

	theme, err := preference.NewThemeStore(settings).LoadTheme(context.Background())
	require.NoError(t, err)
	require.Equal(t, guide.ThemeDark, theme)
}

func TestThemeStore_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dbErr := errors.New("database is locked")
	settings := mock.NewMockSettingsRepository(ctrl)
	settings.EXPECT().Get(gomock.Any(), "theme").Return(nil, dbErr)

	theme, err := preference.NewThemeStore(settings).LoadTheme(context.Background())
	require.ErrorIs(t, err, dbErr)
	require.Equal(t, guide.ThemeDark, theme)
}

func TestThemeStore_SaveRejectsUnknownTheme(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No Set expectation.
	err := preference.NewThemeStore(mock.NewMockSettingsRepository(ctrl)).SaveTheme(context.Background(), "neon")
	require.Error(t, err)
}

func TestThemeStore_PersistsAcrossSessions(t *testing.T) {
	conn := testutil.NewLocalTestDB(t)
	ctx := context.Background()

	first := guide.NewShell(ctx, guide.NewCache(), nil, preference.NewThemeStore(repository.NewSettingsRepository(conn)))
	require.Equal(t, guide.ThemeDark, first.Theme())
	_, err := first.ToggleTheme(ctx)
	require.NoError(t, err)

	second := guide.NewShell(ctx, guide.NewCache(), nil, preference.NewThemeStore(repository.NewSettingsRepository(conn)))
	require.Equal(t, guide.ThemeLight, second.Theme())
}
