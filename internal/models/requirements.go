package models

// RequiredDocuments returns the set of document kinds an application must
// carry for the given job and education level. The conditional requirements
// live here as one declarative table instead of scattered checks: the
// education certificate is required unless the level is "none", and the
// pharmacist-specific documents only when the selected job is pharmacist.
func RequiredDocuments(job Job, level EducationLevel) []DocumentKind {
	required := []DocumentKind{
		DocNationalIDFront,
		DocNationalIDBack,
		DocCV,
	}

	if level != EducationNone {
		required = append(required, DocEducationCertificate)
	}

	if job == JobPharmacist {
		required = append(required,
			DocGraduationCertificate,
			DocPharmacistLicense,
			DocSyndicateCard,
		)
	}

	return required
}

// MissingDocuments returns the required kinds absent from docs, in the
// order RequiredDocuments lists them.
func MissingDocuments(job Job, level EducationLevel, docs map[DocumentKind]string) []DocumentKind {
	var missing []DocumentKind
	for _, kind := range RequiredDocuments(job, level) {
		if docs[kind] == "" {
			missing = append(missing, kind)
		}
	}
	return missing
}
