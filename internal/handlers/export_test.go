package handlers

// DefaultReferralBonus exposes defaultReferralBonus to external test packages.
const DefaultReferralBonus = defaultReferralBonus

// UploadProofImage lets external test packages stub the S3 uploader.
var UploadProofImage = &uploadProofImage

// PresignProofURL lets external test packages stub the S3 presigner.
var PresignProofURL = &presignProofURL
