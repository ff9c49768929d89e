package schemeControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Scheme describes a government support programme for handicraft artisans.
type Scheme struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	ShortDescription    string   `json:"shortDescription"`
	Benefits            []string `json:"benefits"`
	Eligibility         []string `json:"eligibility"`
	ApplicationProcess  []string `json:"applicationProcess"`
	FinancialAssistance string   `json:"financialAssistance"`
	OfficialWebsite     string   `json:"officialWebsite"`
}

// Curated from indian.handicrafts.gov.in; static, no persistence.
var schemes = []Scheme{
	{
		ID:       "1",
		Name:     "National Handicrafts Development Programme (NHDP)",
		Category: "Cluster Development",
		ShortDescription: "Creates a globally competitive handicrafts sector and provides sustainable " +
			"livelihood opportunities to artisans through innovative product designs, quality improvement, " +
			"modern technology, branding and marketing.",
		Benefits: []string{
			"Innovative product designs and development",
			"Product quality improvement",
			"Modern technology introduction",
			"Branding and marketing support",
		},
		Eligibility: []string{
			"Registered handicraft artisans",
			"Handicraft clusters and cooperatives",
			"Women artisans (priority)",
			"Artisans from rural areas",
		},
		ApplicationProcess: []string{
			"Register on the Indian Handicrafts Portal",
			"Submit scheme application through portal",
			"Attach required documents and project proposal",
			"Screening committee evaluation",
		},
		FinancialAssistance: "Comprehensive support including training, infrastructure, marketing, and technology upgradation",
		OfficialWebsite:     "https://indian.handicrafts.gov.in",
	},
	{
		ID:       "2",
		Name:     "Comprehensive Handicrafts Cluster Development Scheme (CHCDS)",
		Category: "Infrastructure",
		ShortDescription: "Integrated projects to scale up infrastructure and the production chain at " +
			"handicrafts clusters across the country, modernising unorganised clusters.",
		Benefits: []string{
			"Infrastructure development and modernization",
			"Production chain scale-up",
			"Common facility centres",
		},
		Eligibility: []string{
			"Handicraft clusters",
			"Artisan cooperatives and federations",
		},
		ApplicationProcess: []string{
			"Cluster proposal through state handicrafts department",
			"Technical and financial appraisal",
			"Approval and phased fund release",
		},
		FinancialAssistance: "Project-based support for cluster infrastructure",
		OfficialWebsite:     "https://indian.handicrafts.gov.in",
	},
	{
		ID:       "3",
		Name:     "PM Vishwakarma Scheme",
		Category: "Credit & Skill",
		ShortDescription: "End-to-end support to artisans and craftspeople working with their hands and " +
			"tools: recognition, skill upgradation, toolkit incentive, collateral-free credit and market linkage.",
		Benefits: []string{
			"PM Vishwakarma certificate and ID card",
			"Collateral-free enterprise development loans",
			"Toolkit incentive",
			"Skill upgradation with stipend",
		},
		Eligibility: []string{
			"Artisans and craftspeople in traditional trades",
			"Age 18 or above",
			"Not a beneficiary of similar credit schemes in the last 5 years",
		},
		ApplicationProcess: []string{
			"Apply through Common Service Centres",
			"Three-step verification",
			"Skill assessment and training",
			"Loan disbursal through partner banks",
		},
		FinancialAssistance: "Loans up to Rs 3 lakh in two tranches at 5% interest",
		OfficialWebsite:     "https://pmvishwakarma.gov.in",
	},
}

// GetSchemes serves the static directory of government support schemes.
func GetSchemes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": schemes})
	}
}
