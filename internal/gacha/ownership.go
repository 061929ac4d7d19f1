package gacha

import "github.com/osse101/SpiritSummon_Go/internal/domain"

// ResolveOwnership records spirit in owned when it is new. A duplicate leaves
// owned untouched and earns the tier's payout; the payout is reported to the
// wallet collaborator, this package never moves currency itself.
func ResolveOwnership(spirit domain.Spirit, owned domain.OwnershipSet, values DuplicateValueTable) (isNew bool, reward domain.DuplicateReward) {
	if owned.Add(spirit.ID) {
		return true, domain.DuplicateReward{}
	}
	return false, domain.DuplicateReward{Amount: values.For(spirit.Rarity)}
}
