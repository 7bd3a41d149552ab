package goals

import "github.com/petalworks/gardencore/internal/domain"

// Goal entry ids. Engines reject progress against ids they do not know, so
// the action layer only uses these.
const (
	AchPlant10   = "plant_10"
	AchPlant50   = "plant_50"
	AchHarvest25 = "harvest_25"
	AchCraft5    = "craft_5"
	AchStreak7   = "streak_7"
	AchCombo25   = "combo_25"
	AchLevel10   = "level_10"

	QuestNurture5 = "daily_nurture_5"
	QuestHarvest3 = "daily_harvest_3"
	QuestCraft1   = "daily_craft_1"
	QuestCombo10  = "daily_combo_10"
	QuestBloom4   = "daily_bloom_4"
	QuestSeeds2   = "daily_seeds_2"
	QuestEnergy10 = "daily_energy_10"
	QuestPlay     = "daily_play"

	GroupSeedsCollected   = "seeds_collected"
	GroupLongestStreak    = "longest_streak"
	GroupLifetimeNurtures = "lifetime_nurtures"
)

// AchievementTemplates is the fixed achievement set; achievements are never
// regenerated
func AchievementTemplates() []domain.GoalTemplate {
	return []domain.GoalTemplate{
		{ID: AchPlant10, Description: "Nurture 10 manifestations", TargetValue: 10,
			Reward: domain.Reward{Gems: 50}},
		{ID: AchPlant50, Description: "Nurture 50 manifestations", TargetValue: 50,
			Reward: domain.Reward{Gems: 200, SeedsByRarity: map[domain.Rarity]int{domain.RarityRare: 1}}},
		{ID: AchHarvest25, Description: "Harvest 25 blooms", TargetValue: 25,
			Reward: domain.Reward{Gems: 150}},
		{ID: AchCraft5, Description: "Craft 5 seeds", TargetValue: 5,
			Reward: domain.Reward{SeedsByRarity: map[domain.Rarity]int{domain.RarityEpic: 1}}},
		{ID: AchStreak7, Description: "Reach a 7-day streak", TargetValue: 7,
			Reward: domain.Reward{Energy: 10}},
		{ID: AchCombo25, Description: "Reach a 25-action combo", TargetValue: 25,
			Reward: domain.Reward{Gems: 75}},
		{ID: AchLevel10, Description: "Reach level 10", TargetValue: 10,
			Reward: domain.Reward{Gems: 300, SeedsByRarity: map[domain.Rarity]int{domain.RarityLegendary: 1}}},
	}
}

// QuestPool is the template pool daily quests are drawn from
func QuestPool() []domain.GoalTemplate {
	return []domain.GoalTemplate{
		{ID: QuestNurture5, Description: "Nurture 5 times today", TargetValue: 5,
			Reward: domain.Reward{Gems: 20}},
		{ID: QuestHarvest3, Description: "Harvest 3 blooms today", TargetValue: 3,
			Reward: domain.Reward{Gems: 30}},
		{ID: QuestCraft1, Description: "Craft a seed today", TargetValue: 1,
			Reward: domain.Reward{Gems: 40}},
		{ID: QuestCombo10, Description: "Chain a 10-action combo today", TargetValue: 10,
			Reward: domain.Reward{Gems: 25}},
		{ID: QuestBloom4, Description: "Collect 4 blooms today", TargetValue: 4,
			Reward: domain.Reward{Energy: 5}},
		{ID: QuestSeeds2, Description: "Gain 2 seeds today", TargetValue: 2,
			Reward: domain.Reward{Gems: 35}},
		{ID: QuestEnergy10, Description: "Spend 10 energy today", TargetValue: 10,
			Reward: domain.Reward{Gems: 25}},
		{ID: QuestPlay, Description: "Tend your garden today", TargetValue: 1,
			Reward: domain.Reward{Energy: 3}},
	}
}

// MilestoneTemplates is the fixed tiered milestone set; milestones are never
// regenerated
func MilestoneTemplates() []domain.GoalTemplate {
	return []domain.GoalTemplate{
		{ID: "seeds_collected_1", Group: GroupSeedsCollected, Tier: 1, TargetValue: 10,
			Description: "Collect 10 seeds", Reward: domain.Reward{Gems: 50}},
		{ID: "seeds_collected_2", Group: GroupSeedsCollected, Tier: 2, TargetValue: 50,
			Description: "Collect 50 seeds",
			Reward:      domain.Reward{Gems: 150, SeedsByRarity: map[domain.Rarity]int{domain.RarityRare: 2}}},
		{ID: "seeds_collected_3", Group: GroupSeedsCollected, Tier: 3, TargetValue: 200,
			Description: "Collect 200 seeds",
			Reward:      domain.Reward{Gems: 500, SeedsByRarity: map[domain.Rarity]int{domain.RarityLegendary: 1}}},

		{ID: "longest_streak_1", Group: GroupLongestStreak, Tier: 1, TargetValue: 7,
			Description: "Hold a 7-day streak", Reward: domain.Reward{Gems: 40}},
		{ID: "longest_streak_2", Group: GroupLongestStreak, Tier: 2, TargetValue: 30,
			Description: "Hold a 30-day streak", Reward: domain.Reward{Gems: 200}},
		{ID: "longest_streak_3", Group: GroupLongestStreak, Tier: 3, TargetValue: 100,
			Description: "Hold a 100-day streak",
			Reward:      domain.Reward{Gems: 1000, SeedsByRarity: map[domain.Rarity]int{domain.RarityLegendary: 2}}},

		{ID: "lifetime_nurtures_1", Group: GroupLifetimeNurtures, Tier: 1, TargetValue: 100,
			Description: "Nurture 100 times", Reward: domain.Reward{Gems: 60}},
		{ID: "lifetime_nurtures_2", Group: GroupLifetimeNurtures, Tier: 2, TargetValue: 500,
			Description: "Nurture 500 times", Reward: domain.Reward{Gems: 250}},
		{ID: "lifetime_nurtures_3", Group: GroupLifetimeNurtures, Tier: 3, TargetValue: 2000,
			Description: "Nurture 2000 times", Reward: domain.Reward{Gems: 800}},
	}
}
