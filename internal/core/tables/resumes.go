package tables

import "github.com/JonMunkholm/jobtracker/internal/core"

func init() {
	registerResumeLinks()
}

func registerResumeLinks() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Name:  core.TableResumeLinks,
			Group: "Resumes",
			Label: "Resume Links",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: core.ColVersion, Type: core.FieldText, Required: true},
			{Name: "Date", Type: core.FieldDate},
			{Name: "Role", Type: core.FieldText},
			{Name: "Major Changes", Type: core.FieldText},
			{Name: "Minor Changes", Type: core.FieldText},
			{Name: "Link", Type: core.FieldText},
		},
	})
}
