package booking

import (
	"fmt"

	"advoqat/models"
)

// Consultation fee schedule. Voice calls carry a surcharge over video/chat
// because they are routed through the telephony bridge.
const (
	baseConsultationFee = 50.0
	voiceSurcharge      = 10.0
)

// QuoteFees computes the fee quote for the given consultation method.
func QuoteFees(method string) models.ConsultationFees {
	fees := models.ConsultationFees{BaseFee: baseConsultationFee}
	if method == models.MethodVoice {
		fees.AdditionalFee = voiceSurcharge
	}
	fees.TotalFee = fees.BaseFee + fees.AdditionalFee
	return fees
}

// FormatAmount renders a dollar amount for the review screen, e.g. "$60.00".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
