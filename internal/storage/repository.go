package storage

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Signals

func (r *Repository) SaveSignal(signal *Signal) error {
	return r.db.Create(signal).Error
}

func (r *Repository) UpdateSignal(signal *Signal) error {
	return r.db.Save(signal).Error
}

func (r *Repository) GetActiveSignal(pair, action string) (*Signal, error) {
	var signal Signal
	err := r.db.Where("status = ? AND pair = ? AND action = ?", "active", pair, action).
		Order("created_at DESC").First(&signal).Error
	if err != nil {
		return nil, err
	}
	return &signal, nil
}

func (r *Repository) GetActiveSignals() ([]Signal, error) {
	var signals []Signal
	err := r.db.Where("status = ?", "active").Order("created_at DESC").Find(&signals).Error
	return signals, err
}

func (r *Repository) GetRecentSignals(limit int) ([]Signal, error) {
	var signals []Signal
	err := r.db.Order("created_at DESC").Limit(limit).Find(&signals).Error
	return signals, err
}

func (r *Repository) CountTodaySignals() (int64, error) {
	today := time.Now().Truncate(24 * time.Hour)
	var count int64
	err := r.db.Model(&Signal{}).Where("created_at >= ?", today).Count(&count).Error
	return count, err
}

// Fee snapshots

func (r *Repository) SaveFeeSnapshot(snapshot *FeeSnapshot) error {
	return r.db.Create(snapshot).Error
}

func (r *Repository) GetLatestFeeSnapshot() (*FeeSnapshot, error) {
	var snapshot FeeSnapshot
	err := r.db.Order("created_at DESC").First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *Repository) GetFeeHistory(limit int) ([]FeeSnapshot, error) {
	var snapshots []FeeSnapshot
	err := r.db.Order("created_at DESC").Limit(limit).Find(&snapshots).Error
	return snapshots, err
}

// Pair stats

func (r *Repository) SavePairStat(stat *PairStat) error {
	return r.db.Create(stat).Error
}

func (r *Repository) GetLatestPairStats() ([]PairStat, error) {
	var stats []PairStat
	sub := r.db.Model(&PairStat{}).Select("pair, MAX(created_at) AS max_created").Group("pair")
	err := r.db.Joins("JOIN (?) latest ON pair_stats.pair = latest.pair AND pair_stats.created_at = latest.max_created", sub).
		Order("pair_stats.pair").Find(&stats).Error
	return stats, err
}

// Analysis logs

func (r *Repository) SaveAnalysisLog(log *AnalysisLog) error {
	return r.db.Create(log).Error
}

func (r *Repository) GetRecentAnalysisLogs(limit int) ([]AnalysisLog, error) {
	var logs []AnalysisLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
