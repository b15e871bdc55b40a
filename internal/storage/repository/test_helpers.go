package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateAccount создает тестовый аккаунт и возвращает его UID
func (f *TestDataFactory) CreateAccount(t *testing.T, username, email string, createdAt time.Time) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO accounts (uid, email, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uid, email, username, "hashedpassword", "user", createdAt)
	require.NoError(t, err)
	return uid
}

// CreatePaidAccount создает аккаунт с активной оплаченной подпиской
func (f *TestDataFactory) CreatePaidAccount(t *testing.T, username, email string, expireAt time.Time) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO accounts
		(uid, email, username, password_hash, role, created_at, is_paid_subscriber, subscription_expire_at)
		VALUES ($1, $2, $3, $4, $5, now(), TRUE, $6)`,
		uid, email, username, "hashedpassword", "user", expireAt)
	require.NoError(t, err)
	return uid
}

// CreateProfile создает тестовый профиль тренера
func (f *TestDataFactory) CreateProfile(t *testing.T, userUID, trainerName, team string) {
	_, err := f.storage.DB.Exec(`INSERT INTO profiles (user_uid, trainer_name, trainer_level, team, country)
		VALUES ($1, $2, 40, $3, 'JP')`,
		userUID, trainerName, team)
	require.NoError(t, err)
}

// CreateSnapshot создает тестовый снапшот и возвращает его ID
func (f *TestDataFactory) CreateSnapshot(t *testing.T, userUID string, entryDate time.Time, totalXP int64, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO stat_snapshots
		(user_uid, entry_date, created_at, total_xp, pokemon_caught, distance_walked,
		 pokestops_visited, unique_pokedex_entries, trainer_level, screenshot_key, verification_status)
		VALUES ($1, $2, $3, $4, 100, 50.5, 200, 150, 40, 'shot.png', $5) RETURNING id`,
		userUID, entryDate, entryDate.Add(2*time.Hour), totalXP, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// GetTestSnapshotData возвращает стандартные тестовые данные снапшота
func GetTestSnapshotData(userUID string, entryDate time.Time) models.StatSnapshot {
	return models.StatSnapshot{
		UserUID:              userUID,
		EntryDate:            entryDate,
		CreatedAt:            entryDate.Add(2 * time.Hour),
		TotalXP:              100000,
		PokemonCaught:        2500,
		DistanceWalked:       320.5,
		PokestopsVisited:     1800,
		UniquePokedexEntries: 400,
		TrainerLevel:         38,
		ScreenshotKey:        "shot.png",
		VerificationStatus:   models.VerificationPending,
	}
}
