package version

var RevisionFromSettings = revisionFromSettings
