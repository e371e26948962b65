package message

// UserNoticeType is the msg-id of a USERNOTICE.
type UserNoticeType string

const (
	Sub                 UserNoticeType = "sub"
	Resub               UserNoticeType = "resub"
	SubGift             UserNoticeType = "subgift"
	AnonSubGift         UserNoticeType = "anonsubgift"
	SubMysteryGift      UserNoticeType = "submysterygift"
	GiftPaidUpgrade     UserNoticeType = "giftpaidupgrade"
	RewardGift          UserNoticeType = "rewardgift"
	AnonGiftPaidUpgrade UserNoticeType = "anongiftpaidupgrade"
	Raid                UserNoticeType = "raid"
	Unraid              UserNoticeType = "unraid"
	Ritual              UserNoticeType = "ritual"
	BitsBadgeTier       UserNoticeType = "bitsbadgetier"
	UndefinedNotice     UserNoticeType = ""
)

// UserNoticeTypes lists every known notice type.
var UserNoticeTypes = []UserNoticeType{
	Sub, Resub, SubGift, AnonSubGift, SubMysteryGift, GiftPaidUpgrade,
	RewardGift, AnonGiftPaidUpgrade, Raid, Unraid, Ritual, BitsBadgeTier,
}

func UserNoticeTypeFromID(id string) UserNoticeType {
	for _, t := range UserNoticeTypes {
		if string(t) == id {
			return t
		}
	}
	return UndefinedNotice
}
