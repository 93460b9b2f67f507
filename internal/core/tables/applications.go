package tables

import "github.com/JonMunkholm/jobtracker/internal/core"

func init() {
	registerApplications()
}

func registerApplications() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Name:  core.TableApplications,
			Group: "Core",
			Label: "Applications",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: core.ColID, Type: core.FieldText, Required: true},
			{Name: core.ColAppliedDate, Type: core.FieldDate},
			{Name: "Job Source", Type: core.FieldText},
			{Name: core.ColLocation, Type: core.FieldText, Normalizer: NormalizeLocation},
			{Name: "Role", Type: core.FieldText},
			{Name: "Level", Type: core.FieldText},
			{Name: "Specialization", Type: core.FieldText},
			{Name: core.ColListingJobTitle, Type: core.FieldText},
			{Name: core.ColCompany, Type: core.FieldText, Required: true},
			{Name: "Yrs XP Min", Type: core.FieldNumeric},
			{Name: "Salary Min (K)", Type: core.FieldNumeric, Normalizer: NormalizeSalary},
			{Name: "Salary Max (K)", Type: core.FieldNumeric, Normalizer: NormalizeSalary},
			{Name: "Desired Salary", Type: core.FieldNumeric, Normalizer: NormalizeSalary},
			{Name: "Matching Skills", Type: core.FieldText},
			{Name: "Matching Experience", Type: core.FieldText},
			{Name: "Missing Skills", Type: core.FieldText},
			{Name: "Missing Experience", Type: core.FieldText},
			{Name: "Resume Version", Type: core.FieldText},
			{Name: "Link", Type: core.FieldText},
			{Name: core.ColNotes, Type: core.FieldText},
		},
	})
}
