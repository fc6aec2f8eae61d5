package models

import (
	"time"

	"gorm.io/gorm"
)

// GameMap is the closed set of playable maps a strategy can target.
type GameMap string

const (
	MapDust2    GameMap = "DUST_2"
	MapMirage   GameMap = "MIRAGE"
	MapInferno  GameMap = "INFERNO"
	MapNuke     GameMap = "NUKE"
	MapOverpass GameMap = "OVERPASS"
	MapTrain    GameMap = "TRAIN"
	MapVertigo  GameMap = "VERTIGO"
	MapAncient  GameMap = "ANCIENT"
)

// StrategyType categorizes a strategy by the economy round it is played on.
type StrategyType string

const (
	TypePistol  StrategyType = "PISTOL"
	TypeForce   StrategyType = "FORCE"
	TypeBuy     StrategyType = "BUY"
	TypeDefault StrategyType = "DEFAULT"
)

// PlayerSide is the team side a strategy is written for.
type PlayerSide string

const (
	SideCT PlayerSide = "CT"
	SideT  PlayerSide = "T"
)

// Valid reports whether m is a member of the closed map set.
func (m GameMap) Valid() bool {
	switch m {
	case MapDust2, MapMirage, MapInferno, MapNuke, MapOverpass, MapTrain, MapVertigo, MapAncient:
		return true
	}
	return false
}

// Valid reports whether t is a member of the closed strategy-type set.
func (t StrategyType) Valid() bool {
	switch t {
	case TypePistol, TypeForce, TypeBuy, TypeDefault:
		return true
	}
	return false
}

// Valid reports whether s is a member of the closed side set.
func (s PlayerSide) Valid() bool {
	switch s {
	case SideCT, SideT:
		return true
	}
	return false
}

// Strategy is a stored tactical plan for a map, side and round type.
type Strategy struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TeamID    string         `json:"teamId" gorm:"index;type:varchar(36)"`
	CreatedBy string         `json:"createdBy" gorm:"type:varchar(36)"`
	GameMap   GameMap        `json:"gameMap" gorm:"type:varchar(32)"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Type      StrategyType   `json:"type" gorm:"type:varchar(32)"`
	Side      PlayerSide     `json:"side" gorm:"type:varchar(8)"`
	Active    bool           `json:"active" gorm:"default:true"`
	Note      string         `json:"note,omitempty" gorm:"type:varchar(250)"`
	VideoLink string         `json:"videoLink,omitempty" gorm:"type:varchar(250)"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
