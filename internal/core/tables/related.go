package tables

import "github.com/JonMunkholm/jobtracker/internal/core"

func init() {
	registerRejections()
	registerClosures()
	registerConsiderations()
	registerInterviews()
}

func registerRejections() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Name:  core.TableRejections,
			Group: "Related",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: core.ColApplicationID, Type: core.FieldText, Required: true},
			{Name: "Rejection Source", Type: core.FieldText},
			{Name: "Status Date", Type: core.FieldDate},
		},
	})
}

func registerClosures() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Name:  core.TableClosures,
			Group: "Related",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: core.ColApplicationID, Type: core.FieldText, Required: true},
			{Name: "Notified Date", Type: core.FieldDate},
			{Name: "Reason", Type: core.FieldText},
		},
	})
}

func registerConsiderations() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Name:  core.TableConsiderations,
			Group: "Related",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: core.ColApplicationID, Type: core.FieldText, Required: true},
			{Name: "Initiation Method", Type: core.FieldText},
			{Name: "Date Initiated", Type: core.FieldDate},
			{Name: "JD Link", Type: core.FieldText},
			{Name: "Interview Doc Link", Type: core.FieldText},
		},
	})
}

func registerInterviews() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Name:  core.TableInterviews,
			Group: "Related",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: core.ColID, Type: core.FieldText, Required: true},
			{Name: core.ColApplicationID, Type: core.FieldText, Required: true},
			{Name: "Stage", Type: core.FieldText},
			{Name: "Type", Type: core.FieldText},
			{Name: "Interview Date", Type: core.FieldDate},
			{Name: "Interviewer Title", Type: core.FieldText},
			{Name: "Interviewer Name", Type: core.FieldText},
			{Name: core.ColNotes, Type: core.FieldText},
		},
	})
}
