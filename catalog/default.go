package catalog

import "github.com/signalsfoundry/orbital-cdn/model"

const mb = 1024 * 1024

// Default returns a catalog of realistic content items: the kind of mix a
// satellite CDN would carry to remote regions (news and weather broadcasts,
// maps, emergency documents, audio, software updates). Sizes and popularity
// scores follow the reference catalog used by the workload generator.
func Default() *Catalog {
	c := New()
	for _, ref := range []model.ContentRef{
		{ID: "video_news_bulletin_1080p", SizeBytes: 450 * mb, Type: model.ContentVideo, Popularity: 0.85},
		{ID: "video_educational_tutorial", SizeBytes: 320 * mb, Type: model.ContentVideo, Popularity: 0.75},
		{ID: "video_sports_highlights", SizeBytes: 280 * mb, Type: model.ContentVideo, Popularity: 0.90},
		{ID: "video_weather_forecast", SizeBytes: 120 * mb, Type: model.ContentVideo, Popularity: 0.70},
		{ID: "image_satellite_map", SizeBytes: 45 * mb, Type: model.ContentImage, Popularity: 0.65},
		{ID: "image_news_photo", SizeBytes: 12 * mb, Type: model.ContentImage, Popularity: 0.80},
		{ID: "image_infographic", SizeBytes: 8 * mb, Type: model.ContentImage, Popularity: 0.60},
		{ID: "doc_emergency_protocol", SizeBytes: 5 * mb, Type: model.ContentDocument, Popularity: 0.55},
		{ID: "doc_field_manual", SizeBytes: 18 * mb, Type: model.ContentDocument, Popularity: 0.45},
		{ID: "audio_news_podcast", SizeBytes: 35 * mb, Type: model.ContentAudio, Popularity: 0.68},
		{ID: "audio_language_course", SizeBytes: 60 * mb, Type: model.ContentAudio, Popularity: 0.50},
		{ID: "app_navigation_update", SizeBytes: 150 * mb, Type: model.ContentApplication, Popularity: 0.72},
		{ID: "app_security_patch", SizeBytes: 90 * mb, Type: model.ContentApplication, Popularity: 0.58},
	} {
		// Add only fails on empty or duplicate IDs; the literal list has neither.
		if err := c.Add(ref); err != nil {
			panic(err)
		}
	}
	return c
}
