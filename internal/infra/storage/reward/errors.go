package reward

import "errors"

var (
	// ErrRewardNotFound возвращается, когда награда не найдена
	ErrRewardNotFound = errors.New("reward.repository: reward not found")

	// ErrRewardInUse возвращается при удалении награды, на которую есть обмены
	ErrRewardInUse = errors.New("reward.repository: reward has exchanges")

	ErrBuildQuery = errors.New("reward.repository: failed to build query")
	ErrExecQuery  = errors.New("reward.repository: failed to execute query")
	ErrScanRow    = errors.New("reward.repository: failed to scan row")
)
