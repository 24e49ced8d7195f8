package devkit

// Canned Helix response bodies for consumer test suites.

const UsersBody = `{
  "data": [
    {
      "id": "141981764",
      "login": "twitchdev",
      "display_name": "TwitchDev",
      "type": "",
      "broadcaster_type": "partner",
      "description": "Supporting third-party developers.",
      "view_count": 5980557,
      "email": "not-real@example.test"
    }
  ]
}`

const ClipsBody = `{
  "data": [
    {
      "id": "AwkwardHelplessSalamanderSwiftRage",
      "url": "https://clips.example.test/AwkwardHelplessSalamanderSwiftRage",
      "broadcaster_id": "67955580",
      "creator_id": "53834192",
      "video_id": "205586603",
      "game_id": "488191",
      "title": "babymetal",
      "view_count": 10,
      "created_at": "2017-11-30T22:34:18Z"
    }
  ],
  "pagination": {"cursor": "eyJiIjpudWxs"}
}`

const ExtensionAnalyticsBody = `{
  "data": [
    {
      "extension_id": "efgh",
      "URL": "https://reports.example.test/dnwssc7uqzlst4sep1qf",
      "type": "overview_v2",
      "date_range": {
        "started_at": "2018-03-01T00:00:00Z",
        "ended_at": "2018-06-01T00:00:00Z"
      }
    }
  ]
}`

const CodeStatusBody = `{
  "data": [
    {"code": "KUHXV-4GXYP-AKG8J", "status": "UNUSED"},
    {"code": "XZDDZ-5SIQR-RT5M3", "status": "ALREADY_CLAIMED"}
  ]
}`

const BannedUsersBody = `{
  "data": [
    {
      "user_id": "423374343",
      "user_name": "glowillig",
      "expires_at": "2019-03-15T02:00:28Z"
    }
  ],
  "pagination": {"cursor": "eyJiIjpudWxs"}
}`

const AppTokenBody = `{
  "access_token": "prau3ol6mg5glgek8m89ec2s9q5i3i",
  "expires_in": 5011271,
  "scope": [],
  "token_type": "bearer"
}`
