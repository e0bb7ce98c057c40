package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/cache"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/database"
)

const (
	CacheKeyIssuesTotal = "statistics:issues:total"
	CacheKeyIssuesDaily = "statistics:issues:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyIssuesOpen  = "statistics:issues:open"
	CacheKeyFacilities  = "statistics:facilities:total"
	CacheKeyUsers       = "statistics:users:total"
	CacheExpiration     = 30 * time.Minute
)

// StatisticsData holds the aggregate numbers shown on the dashboard
type StatisticsData struct {
	TodayIssues     int
	OpenIssues      int
	TotalIssues     int
	TotalFacilities int
	TotalUsers      int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached numbers are older than the refresh interval
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the statistics cache when it is stale
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		log.Println("Updating statistics cache...")
		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded call to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalIssues int64
	if err := db.Model(&models.Issue{}).Count(&totalIssues).Error; err != nil {
		log.Printf("Error counting total issues: %v", err)
		return err
	}

	var openIssues int64
	if err := db.Model(&models.Issue{}).Where("status = ?", models.IssueStatusOpen).Count(&openIssues).Error; err != nil {
		log.Printf("Error counting open issues: %v", err)
		return err
	}

	var todayIssues int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.Issue{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayIssues).Error; err != nil {
		log.Printf("Error counting today's issues: %v", err)
		return err
	}

	var totalFacilities int64
	if err := db.Model(&models.Facility{}).Count(&totalFacilities).Error; err != nil {
		log.Printf("Error counting facilities: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyIssuesTotal, strconv.FormatInt(totalIssues, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total issues: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyIssuesOpen, strconv.FormatInt(openIssues, 10), CacheExpiration); err != nil {
		log.Printf("Error caching open issues: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyIssuesDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayIssues, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's issues: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyFacilities, strconv.FormatInt(totalFacilities, 10), CacheExpiration); err != nil {
		log.Printf("Error caching facilities: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	return nil
}

// GetStatistics returns the dashboard numbers, refreshing the cache when stale
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	today := time.Now().Format("2006-01-02")
	return StatisticsData{
		TodayIssues:     getCachedCount(fmt.Sprintf(CacheKeyIssuesDaily, today), countIssuesToday),
		OpenIssues:      getCachedCount(CacheKeyIssuesOpen, countOpenIssues),
		TotalIssues:     getCachedCount(CacheKeyIssuesTotal, countTotalIssues),
		TotalFacilities: getCachedCount(CacheKeyFacilities, countFacilities),
		TotalUsers:      getCachedCount(CacheKeyUsers, countUsers),
	}
}

// getCachedCount reads a counter from the cache, falling back to the database
func getCachedCount(key string, fallback func() int64) int {
	val, err := cache.Get(key)
	if err != nil {
		count := fallback()
		if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
		}
		return int(count)
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Error parsing cached value for %s: %v", key, err)
		return 0
	}
	return count
}

func countTotalIssues() int64 {
	var count int64
	if err := database.GetDB().Model(&models.Issue{}).Count(&count).Error; err != nil {
		log.Printf("Error counting total issues: %v", err)
	}
	return count
}

func countOpenIssues() int64 {
	var count int64
	if err := database.GetDB().Model(&models.Issue{}).Where("status = ?", models.IssueStatusOpen).Count(&count).Error; err != nil {
		log.Printf("Error counting open issues: %v", err)
	}
	return count
}

func countIssuesToday() int64 {
	var count int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)
	if err := database.GetDB().Model(&models.Issue{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
		log.Printf("Error counting today's issues: %v", err)
	}
	return count
}

func countFacilities() int64 {
	var count int64
	if err := database.GetDB().Model(&models.Facility{}).Count(&count).Error; err != nil {
		log.Printf("Error counting facilities: %v", err)
	}
	return count
}

func countUsers() int64 {
	var count int64
	if err := database.GetDB().Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
	}
	return count
}
