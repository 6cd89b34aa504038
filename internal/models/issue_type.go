package models

// IssueType - элемент справочника типовых проблем
type IssueType struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Icon               string `json:"icon"`
	DefaultDescription string `json:"default_description"`
}

// MostReported - строка представления most_reported_issues
type MostReported struct {
	IssueType   string `json:"issue_type"`
	ReportCount int    `json:"report_count"`
}

// IssueTypes - справочник типовых проблем
var IssueTypes = []IssueType{
	{
		ID:                 "pothole",
		Name:               "Pothole",
		Description:        "Road damage that needs repair",
		Icon:               "alert-circle",
		DefaultDescription: "There is a pothole on the road that poses a safety hazard for vehicles and pedestrians. Immediate repair is needed to prevent accidents.",
	},
	{
		ID:                 "garbage",
		Name:               "Garbage Dump",
		Description:        "Illegal or overflowing garbage",
		Icon:               "trash-2",
		DefaultDescription: "Garbage has been dumped illegally or waste bins are overflowing in this area. This needs immediate attention for public health and cleanliness.",
	},
	{
		ID:                 "streetlight",
		Name:               "Broken Streetlight",
		Description:        "Non-functional street lighting",
		Icon:               "lightbulb",
		DefaultDescription: "The streetlight at this location is not working. This creates safety concerns during nighttime and needs urgent repair.",
	},
	{
		ID:                 "water-leakage",
		Name:               "Water Leakage",
		Description:        "Pipe leakage or water wastage",
		Icon:               "droplet",
		DefaultDescription: "There is a water leakage from a pipe or water main. This is causing water wastage and potential damage to the surrounding area.",
	},
	{
		ID:                 "illegal-parking",
		Name:               "Illegal Parking",
		Description:        "Vehicles blocking public spaces",
		Icon:               "car",
		DefaultDescription: "Vehicles are parked illegally, blocking public access or creating traffic congestion in this area.",
	},
	{
		ID:                 "open-manhole",
		Name:               "Open Manhole",
		Description:        "Uncovered manhole posing danger",
		Icon:               "construction",
		DefaultDescription: "An open or damaged manhole cover poses a serious safety risk to pedestrians and vehicles. Immediate action required.",
	},
	{
		ID:                 "stray-animals",
		Name:               "Stray Animals",
		Description:        "Stray animals causing issues",
		Icon:               "paw-print",
		DefaultDescription: "Stray animals in this area are causing disturbance or pose safety concerns for residents and pedestrians.",
	},
	{
		ID:                 "flooding",
		Name:               "Flooding / Waterlogging",
		Description:        "Water accumulation in public areas",
		Icon:               "cloud-rain",
		DefaultDescription: "Water accumulation or flooding in this area is causing inconvenience and potential health hazards. Drainage improvement needed.",
	},
}

// FindIssueType ищет тип проблемы в справочнике
func FindIssueType(id string) (IssueType, bool) {
	for _, t := range IssueTypes {
		if t.ID == id {
			return t, true
		}
	}
	return IssueType{}, false
}
