package common

import (
	"strings"
)

// ValidatePayload checks a message payload against its kind. The returned
// errors are invalid-argument with the offending field named.
func ValidatePayload(p *MessagePayload) error {
	if p == nil {
		return Ef(KindInvalidArgument, "payload", "payload is required")
	}
	if !p.Kind.IsValid() {
		return Ef(KindInvalidArgument, "kind", "unknown message kind")
	}

	meta := p.Metadata

	switch p.Kind {
	case TextMessage:
		if strings.TrimSpace(p.Content) == "" {
			return Ef(KindInvalidArgument, "content", "text message content cannot be empty")
		}

	case ImageMessage, VideoMessage, DocumentMessage:
		if meta == nil || meta.FileURL == "" {
			return Ef(KindInvalidArgument, "metadata.file_url", "file url is required for "+p.Kind.String()+" messages")
		}
		if meta.FileSize < 0 {
			return Ef(KindInvalidArgument, "metadata.file_size", "file size cannot be negative")
		}

	case AudioMessage:
		if meta == nil || meta.FileURL == "" {
			return Ef(KindInvalidArgument, "metadata.file_url", "file url is required for audio messages")
		}
		if meta.Duration <= 0 {
			return Ef(KindInvalidArgument, "metadata.duration", "audio duration must be positive")
		}

	case LocationMessage:
		if meta == nil || meta.Latitude == nil || meta.Longitude == nil {
			return Ef(KindInvalidArgument, "metadata.latitude", "latitude and longitude are required for location messages")
		}
		if *meta.Latitude < -90 || *meta.Latitude > 90 {
			return Ef(KindInvalidArgument, "metadata.latitude", "latitude out of range")
		}
		if *meta.Longitude < -180 || *meta.Longitude > 180 {
			return Ef(KindInvalidArgument, "metadata.longitude", "longitude out of range")
		}

	case ContactMessage:
		if meta == nil || meta.ContactName == "" {
			return Ef(KindInvalidArgument, "metadata.contact_name", "contact name is required for contact messages")
		}
		if meta.ContactPhone == "" && meta.ContactEmail == "" {
			return Ef(KindInvalidArgument, "metadata.contact_phone", "contact phone or email is required")
		}
	}

	return nil
}

// NormalizeMetadata keeps exactly the metadata fields relevant to the kind.
func NormalizeMetadata(kind MessageKind, meta *MessageMetadata) *MessageMetadata {
	if meta == nil {
		return nil
	}

	out := &MessageMetadata{}
	switch kind {
	case ImageMessage, VideoMessage, DocumentMessage:
		out.FileName = meta.FileName
		out.FileSize = meta.FileSize
		out.FileURL = meta.FileURL
		out.ThumbnailURL = meta.ThumbnailURL
		out.Caption = meta.Caption
	case AudioMessage:
		out.FileName = meta.FileName
		out.FileSize = meta.FileSize
		out.FileURL = meta.FileURL
		out.Duration = meta.Duration
		out.Waveform = meta.Waveform
	case LocationMessage:
		out.Latitude = meta.Latitude
		out.Longitude = meta.Longitude
		out.LocationName = meta.LocationName
	case ContactMessage:
		out.ContactName = meta.ContactName
		out.ContactPhone = meta.ContactPhone
		out.ContactEmail = meta.ContactEmail
	default:
		return nil // text carries no metadata
	}
	return out
}
